// Tests in this file exercise version comparison helpers.
package versions

import "testing"

func TestMaxVersion(t *testing.T) {
	t.Parallel()

	input := []string{"1.2.3", "1.10.0", "2.0.1", "v2.0.0", "0.9.9"}
	got, err := MaxVersion(input)
	if err != nil {
		t.Fatalf("MaxVersion returned error: %v", err)
	}
	if got != "2.0.1" {
		t.Fatalf("MaxVersion = %q, want %q", got, "2.0.1")
	}
}

func TestMaxVersionEqualSpellings(t *testing.T) {
	t.Parallel()

	// "1.0.0" and "v1.0.0" normalize to the same version; the earliest
	// spelling must win regardless of input order.
	got, err := MaxVersion([]string{"v1.0.0", "1.0.0", "0.9.0"})
	if err != nil {
		t.Fatalf("MaxVersion returned error: %v", err)
	}
	if got != "v1.0.0" {
		t.Fatalf("MaxVersion = %q, want %q", got, "v1.0.0")
	}

	got, err = MaxVersion([]string{"1.0.0", "v1.0.0"})
	if err != nil {
		t.Fatalf("MaxVersion returned error: %v", err)
	}
	if got != "1.0.0" {
		t.Fatalf("MaxVersion = %q, want %q", got, "1.0.0")
	}
}

func TestMaxVersionInvalid(t *testing.T) {
	t.Parallel()

	if _, err := MaxVersion([]string{"1.2.beta!"}); err == nil {
		t.Fatal("expected error for invalid version token")
	}
}

func TestMaxVersionEmpty(t *testing.T) {
	t.Parallel()

	if _, err := MaxVersion(nil); err == nil {
		t.Fatal("expected error when no versions provided")
	}
}

func TestNewer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		candidate, current string
		want               bool
	}{
		{"v1.3.0", "1.2.9", true},
		{"1.2.9", "v1.3.0", false},
		{"1.3.0", "1.3.0", false},
		{"garbage", "1.0.0", false},
		{"1.0.0", "garbage", false},
	}
	for _, tc := range cases {
		if got := Newer(tc.candidate, tc.current); got != tc.want {
			t.Fatalf("Newer(%q, %q) = %v, want %v", tc.candidate, tc.current, got, tc.want)
		}
	}
}
