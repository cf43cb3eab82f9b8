package main

import (
	"reflect"
	"testing"

	"Migrate-Meraki-Clients-To-Segments/pkg/meraki"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{
			name:   "first non-empty",
			values: []string{"", "second", "third"},
			want:   "second",
		},
		{
			name:   "all empty",
			values: []string{"", "", ""},
			want:   "",
		},
		{
			name:   "whitespace is empty",
			values: []string{"   ", "value"},
			want:   "value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstNonEmpty(tt.values...)
			if got != tt.want {
				t.Errorf("firstNonEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "single pattern",
			input: "00:18:0a:*:*:*",
			want:  []string{"00:18:0a:*:*:*"},
		},
		{
			name:  "multiple with spaces",
			input: "00:18:0a:*:*:*, aa:bb:cc:dd:ee:ff ,",
			want:  []string{"00:18:0a:*:*:*", "aa:bb:cc:dd:ee:ff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitPatterns(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitPatterns(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVerifyNetwork(t *testing.T) {
	networks := []meraki.Network{
		{ID: "N_1", Name: "HQ"},
		{ID: "N_2", Name: "Branch"},
	}

	if err := verifyNetwork("N_2", "123456", networks); err != nil {
		t.Errorf("verifyNetwork() for known network: %v", err)
	}
	if err := verifyNetwork("N_9", "123456", networks); err == nil {
		t.Error("verifyNetwork() for unknown network should fail")
	}
	if err := verifyNetwork("N_1", "123456", nil); err == nil {
		t.Error("verifyNetwork() against empty network list should fail")
	}
}
