package search

import (
	"reflect"
	"testing"
)

func TestExtractFilters(t *testing.T) {
	tests := []struct {
		question string
		want     []string
	}{
		{"What is the exam weight?", nil},
		{"When is the MAT235 midterm?", []string{"MAT235"}},
		{"mat235h1 deadline", []string{"MAT235"}},
		{"Is MAT235Y harder than sta237?", []string{"MAT235", "STA237"}},
		{"MAT235 and mat235 overlap", []string{"MAT235"}},
		{"comparing csc108 csc148 and csc108", []string{"CSC108", "CSC148"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := ExtractFilters(tt.question)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractFilters(%q)=%v, want %v", tt.question, got, tt.want)
		}
	}
}
