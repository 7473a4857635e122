package index

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, World! Go2")
	want := []string{"hello", "world", "go2", "hello world", "world go2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize=%v, want %v", got, want)
	}
}

func TestTokenize_SingleCharsDropped(t *testing.T) {
	got := Tokenize("a I x")
	if got != nil {
		t.Errorf("single-character tokens should be dropped, got %v", got)
	}
}

func TestFit_VocabularyCap(t *testing.T) {
	v := Fit([]string{"alpha beta", "alpha gamma"}, 1)
	if len(v.Terms) != 1 {
		t.Fatalf("expected 1 term, got %d: %v", len(v.Terms), v.Terms)
	}
	if v.Terms[0] != "alpha" {
		t.Errorf("most frequent term should survive the cap, got %q", v.Terms[0])
	}
}

func TestFit_VocabularySorted(t *testing.T) {
	v := Fit([]string{"zebra apple"}, 0)
	for i := 1; i < len(v.Terms); i++ {
		if v.Terms[i-1] >= v.Terms[i] {
			t.Fatalf("vocabulary not sorted: %v", v.Terms)
		}
	}
}

func TestTransform_Normalized(t *testing.T) {
	v := Fit([]string{"exam grading assignments", "office hours schedule"}, 0)
	vec := v.Transform("exam grading details")
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("vector norm^2 = %f, want 1", sum)
	}
}

func TestTransform_UnknownTermsIgnored(t *testing.T) {
	v := Fit([]string{"calculus integrals derivatives"}, 0)
	vec := v.Transform("completely unrelated words")
	for i, x := range vec {
		if x != 0 {
			t.Errorf("component %d = %f, want 0 for out-of-vocabulary query", i, x)
		}
	}
	if len(vec) != v.Dim() {
		t.Errorf("vector length %d != vocabulary size %d", len(vec), v.Dim())
	}
}

func TestFit_FrozenAfterBuild(t *testing.T) {
	v := Fit([]string{"exam grading"}, 0)
	before := v.Dim()
	_ = v.Transform("new words never seen before")
	if v.Dim() != before {
		t.Errorf("vocabulary grew at query time: %d -> %d", before, v.Dim())
	}
}
