package mutation

import "testing"

func TestRedirector_FiresOnce(t *testing.T) {
	var r Redirector
	if r.Armed() {
		t.Fatalf("zero Redirector is armed")
	}
	redirect, ok := r.Arm("/")
	if !ok || redirect.Path != "/" || redirect.After != RedirectDelay {
		t.Fatalf("Arm = %#v, %v, want / after %s", redirect, ok, RedirectDelay)
	}
	if _, ok := r.Fire(redirect.Token + 1); ok {
		t.Fatalf("foreign token fired")
	}
	path, ok := r.Fire(redirect.Token)
	if !ok || path != "/" {
		t.Fatalf("Fire = %q, %v, want /", path, ok)
	}
	if _, ok := r.Fire(redirect.Token); ok {
		t.Fatalf("redirect fired twice")
	}
}

func TestRedirector_RearmInvalidatesEarlierToken(t *testing.T) {
	var r Redirector
	first, _ := r.Arm("/")
	second, _ := r.Arm("/recipes/4")
	if _, ok := r.Fire(first.Token); ok {
		t.Fatalf("replaced redirect fired")
	}
	if path, ok := r.Fire(second.Token); !ok || path != "/recipes/4" {
		t.Fatalf("Fire = %q, %v, want /recipes/4", path, ok)
	}
}

func TestRedirector_Close(t *testing.T) {
	var r Redirector
	redirect, _ := r.Arm("/")
	r.Close()
	if !r.Closed() || r.Armed() {
		t.Fatalf("Closed = %v Armed = %v, want closed and disarmed", r.Closed(), r.Armed())
	}
	if _, ok := r.Fire(redirect.Token); ok {
		t.Fatalf("closed redirector fired")
	}
	if _, ok := r.Arm("/"); ok {
		t.Fatalf("closed redirector armed")
	}
}

func TestRedirector_TokensUniqueAcrossRedirectors(t *testing.T) {
	var a, b Redirector
	ra, _ := a.Arm("/")
	rb, _ := b.Arm("/")
	if ra.Token == rb.Token {
		t.Fatalf("tokens collide: %d", ra.Token)
	}
	if _, ok := b.Fire(ra.Token); ok {
		t.Fatalf("redirector fired with another redirector's token")
	}
}
