package memory

import (
	"runtime/debug"
	"testing"
)

func TestConfigureFromEnvNone(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "")

	result := ConfigureFromEnv()
	if result.Configured {
		t.Error("expected no configuration")
	}
	if result.Source != sourceNone {
		t.Errorf("Source = %q, want %q", result.Source, sourceNone)
	}
}

func TestConfigureFromEnvMemoryLimit(t *testing.T) {
	previous := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(previous) })

	tests := []struct {
		name      string
		ratio     string
		wantRatio float64
	}{
		{"default ratio", "", DefaultMemoryRatio},
		{"custom ratio", "0.5", 0.5},
		{"out of range ratio", "1.5", DefaultMemoryRatio},
		{"unparsable ratio", "half", DefaultMemoryRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOMEMLIMIT", "")
			t.Setenv("MEMORY_LIMIT", "1073741824")
			t.Setenv("MEMORY_RATIO", tt.ratio)

			result := ConfigureFromEnv()
			if !result.Configured || result.Source != sourceMEMORYLIMIT {
				t.Fatalf("result = %+v", result)
			}
			if result.Ratio != tt.wantRatio {
				t.Errorf("Ratio = %v, want %v", result.Ratio, tt.wantRatio)
			}
			want := int64(float64(1073741824) * tt.wantRatio)
			if result.GoMemLimit != want {
				t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, want)
			}
			if got := debug.SetMemoryLimit(-1); got != want {
				t.Errorf("runtime limit = %d, want %d", got, want)
			}
		})
	}
}

func TestConfigureFromEnvInvalidLimit(t *testing.T) {
	for _, raw := range []string{"lots", "-5", "0"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("GOMEMLIMIT", "")
			t.Setenv("MEMORY_LIMIT", raw)

			if result := ConfigureFromEnv(); result.Configured {
				t.Errorf("MEMORY_LIMIT=%q should be ignored, got %+v", raw, result)
			}
		})
	}
}

func TestConfigureFromEnvGOMEMLIMITWins(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "512MiB")
	t.Setenv("MEMORY_LIMIT", "1073741824")

	if result := ConfigureFromEnv(); result.Source != sourceGOMEMLIMIT {
		t.Errorf("Source = %q, want %q", result.Source, sourceGOMEMLIMIT)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
