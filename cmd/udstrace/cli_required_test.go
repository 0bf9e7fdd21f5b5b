package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRequiredFlagsErrors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     func() *cobra.Command
		args    []string
		wantErr string
	}{
		{
			name:    "decode missing input",
			cmd:     newDecodeCmd,
			args:    nil,
			wantErr: "requires --input",
		},
		{
			name:    "ecus missing input",
			cmd:     newECUsCmd,
			args:    nil,
			wantErr: "requires --input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd()
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error: got %q want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDecodePositionalInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	trace := "10:00:00.000 | [Local]-&gt;[Remote] DATA =&gt; mod[0] [ISO15765] cmd[write] args[0x18DAB0F1] data[0x3E00]\n"
	if err := os.WriteFile(path, []byte(trace), 0644); err != nil {
		t.Fatalf("write trace: %v", err)
	}

	cmd := newDecodeCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{path, "--quiet"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("decode via positional argument: %v", err)
	}
}
