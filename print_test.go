package self

import "testing"

// TestPrintRoundTrips checks §8.4: the printed form of a parsed literal
// object preserves each slot's kind markers and, for data slots, the
// companion mutator entry.
func TestPrintRoundTrips(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"(| a |)", "(| a<-. a: |)"},
		{"(| x <- 1 |)", "(| x<-. x: |)"},
		{"(| x = 1 |)", "(| x |)"},
		{"(| p* <- (| a = 1 |) |)", "(| p*<-. p: |)"},
	}
	for _, c := range cases {
		vm := newTestVM()
		result, err := vm.Execute(c.source)
		if err != nil {
			t.Fatalf("%q: %v", c.source, err)
		}
		got := PrintObjectForm(result)
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.source, got, c.want)
		}
	}
}
