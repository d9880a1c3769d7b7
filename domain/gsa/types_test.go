package gsa

import (
	"testing"

	"uqgo/domain/core"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(o *Options) {},
		},
		{
			name:   "both estimators off is valid",
			mutate: func(o *Options) { o.RunSobol = false; o.RunMorris = false },
		},
		{
			name:    "zero sobol samples",
			mutate:  func(o *Options) { o.NSampSobol = 0 },
			wantErr: true,
		},
		{
			name:   "zero sobol samples ignored when sobol off",
			mutate: func(o *Options) { o.RunSobol = false; o.NSampSobol = 0 },
		},
		{
			name:    "zero morris trajectories",
			mutate:  func(o *Options) { o.NSampMorris = 0 },
			wantErr: true,
		},
		{
			name:    "odd morris levels",
			mutate:  func(o *Options) { o.LMorris = 3 },
			wantErr: true,
		},
		{
			name:    "morris levels below two",
			mutate:  func(o *Options) { o.LMorris = 0 },
			wantErr: true,
		},
		{
			name:   "minimum morris levels",
			mutate: func(o *Options) { o.LMorris = 2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr {
				if !core.IsConfigurationError(err) {
					t.Fatalf("expected configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
