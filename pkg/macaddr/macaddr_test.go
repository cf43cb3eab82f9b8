package macaddr

import "testing"

func TestNormalizeExactMac(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "colon separated",
			input: "00:11:22:33:44:55",
			want:  "001122334455",
		},
		{
			name:  "dot separated",
			input: "0011.2233.4455",
			want:  "001122334455",
		},
		{
			name:  "dash separated uppercase",
			input: "AA-BB-CC-DD-EE-FF",
			want:  "aabbccddeeff",
		},
		{
			name:  "already normalized",
			input: "001122334455",
			want:  "001122334455",
		},
		{
			name:    "too short",
			input:   "00:11:22",
			wantErr: true,
		},
		{
			name:    "invalid characters",
			input:   "00:11:22:33:44:zz",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeExactMac(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeExactMac(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NormalizeExactMac(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMacColon(t *testing.T) {
	if got := FormatMacColon("001122334455"); got != "00:11:22:33:44:55" {
		t.Errorf("FormatMacColon() = %q, want %q", got, "00:11:22:33:44:55")
	}
	// non-standard lengths pass through untouched
	if got := FormatMacColon("0011"); got != "0011" {
		t.Errorf("FormatMacColon(short) = %q, want %q", got, "0011")
	}
}

func TestBuildMacMatcher_Exact(t *testing.T) {
	match, err := BuildMacMatcher("00:11:22:33:44:55")
	if err != nil {
		t.Fatalf("BuildMacMatcher() error: %v", err)
	}
	if !match("0011.2233.4455") {
		t.Error("exact matcher should match same MAC in dot notation")
	}
	if match("00:11:22:33:44:56") {
		t.Error("exact matcher should not match a different MAC")
	}
	if match("not-a-mac") {
		t.Error("exact matcher should not match invalid input")
	}
}

func TestBuildMacMatcher_Wildcard(t *testing.T) {
	match, err := BuildMacMatcher("00:18:0a:*:*:*")
	if err != nil {
		t.Fatalf("BuildMacMatcher() error: %v", err)
	}
	if !match("00:18:0a:11:22:33") {
		t.Error("wildcard matcher should match the OUI prefix")
	}
	if match("00:18:0b:11:22:33") {
		t.Error("wildcard matcher should not match a different OUI")
	}
}

func TestBuildMacMatcher_Bracket(t *testing.T) {
	match, err := BuildMacMatcher("00:11:22:33:44:[1-4][0-f]")
	if err != nil {
		t.Fatalf("BuildMacMatcher() error: %v", err)
	}
	if !match("00:11:22:33:44:2a") {
		t.Error("bracket matcher should match within range")
	}
	if match("00:11:22:33:44:5a") {
		t.Error("bracket matcher should not match outside range")
	}
}

func TestBuildMacMatcher_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "bad hex", input: "zz:zz:zz:zz:zz:zz"},
		{name: "unmatched bracket", input: "00:11:22:33:44:[1-4"},
		{name: "wrong nibble count", input: "00:11:*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildMacMatcher(tt.input); err == nil {
				t.Errorf("BuildMacMatcher(%q) should fail", tt.input)
			}
		})
	}
}
