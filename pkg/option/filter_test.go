package option

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter_CaseInsensitiveContains(t *testing.T) {
	options := FromStrings([]string{"Europe/Paris", "America/New_York", "UTC"})

	got := Filter(options, "eUrOpE/p", 10)
	if len(got) != 1 || got[0].Label != "Europe/Paris" {
		t.Fatalf("unexpected results: %#v", got)
	}
}

func TestFilter_PrefixBeforeContains(t *testing.T) {
	options := FromStrings([]string{"x/a/b", "a/b", "c/d", "a/b/c"})

	got := Labels(Filter(options, "a/b", 0))
	want := []string{"a/b", "a/b/c", "x/a/b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected ordering (-want +got):\n%s", diff)
	}
}

func TestFilter_MatchesValueKey(t *testing.T) {
	options := []Option{{Label: "Germany", Value: "de"}, {Label: "France", Value: "fr"}}

	got := Filter(options, "FR", 0)
	if len(got) != 1 || got[0].Value != "fr" {
		t.Fatalf("expected value match, got %#v", got)
	}
}

func TestFilter_EmptyQueryReturnsAllWithLimit(t *testing.T) {
	options := FromStrings([]string{"a", "b", "c"})

	if got := Filter(options, "  ", 0); len(got) != 3 {
		t.Fatalf("expected all options, got %#v", got)
	}
	if got := Filter(options, "", 2); len(got) != 2 {
		t.Fatalf("expected limit applied, got %#v", got)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	options := FromStrings([]string{"b", "ab"})
	_ = Filter(options, "b", 0)
	if options[0].Label != "b" || options[1].Label != "ab" {
		t.Fatalf("input mutated: %#v", options)
	}
}

func TestFilter_LabelsWhoseLowercaseChangesLength(t *testing.T) {
	options := []Option{
		{Label: "İstanbul", Value: "ist"},
		{Label: "Ⱥa", Value: "x"},
		{Label: "Ærøskøbing", Value: "dk"},
		{Label: "Stanford", Value: "sf"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "stan", want: []string{"Stanford", "İstanbul"}},
		{query: "A", want: []string{"İstanbul", "Ⱥa", "Stanford"}},
		{query: "ⱥ", want: []string{"Ⱥa"}},
		{query: "RØS", want: []string{"Ærøskøbing"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Labels(Filter(options, tt.query, 0))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected results (-want +got):\n%s", diff)
			}
		})
	}
}
