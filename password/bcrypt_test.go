package password

import "testing"

func newTestBcrypt(t *testing.T) *Bcrypt {
	t.Helper()

	// MinCost keeps the test fast; production uses DefaultCost.
	b, err := NewBcrypt(Config{Cost: 4})
	if err != nil {
		t.Fatalf("NewBcrypt: %v", err)
	}
	return b
}

func TestHashAndVerify(t *testing.T) {
	b := newTestBcrypt(t)

	hash, err := b.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	ok, err := b.Verify("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("correct password rejected")
	}

	ok, err = b.Verify("wrong password", hash)
	if err != nil {
		t.Fatalf("Verify mismatch: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	b := newTestBcrypt(t)

	h1, err := b.Hash("same input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := b.Hash("same input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same input are identical")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	b := newTestBcrypt(t)

	if _, err := b.Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyGarbageHashIsError(t *testing.T) {
	b := newTestBcrypt(t)

	if _, err := b.Verify("anything", "not-a-bcrypt-hash"); err == nil {
		t.Fatal("expected error for unusable stored hash")
	}
}

func TestNewBcryptCostBounds(t *testing.T) {
	if _, err := NewBcrypt(Config{Cost: 3}); err == nil {
		t.Fatal("expected error for cost below minimum")
	}
	if _, err := NewBcrypt(Config{Cost: 32}); err == nil {
		t.Fatal("expected error for cost above maximum")
	}

	b, err := NewBcrypt(Config{})
	if err != nil {
		t.Fatalf("NewBcrypt default: %v", err)
	}
	if b.cost != DefaultCost {
		t.Fatalf("default cost = %d, want %d", b.cost, DefaultCost)
	}
}
