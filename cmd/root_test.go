package cmd

import (
	"testing"

	"github.com/hance08/payops/internal/constants"
	"github.com/spf13/cobra"
)

func TestAuthRequirementInherited(t *testing.T) {
	root := &cobra.Command{Use: "payops"}
	rows := &cobra.Command{
		Use:         "rows",
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthRequired},
	}
	list := &cobra.Command{Use: "list"}
	accept := &cobra.Command{
		Use:         "accept",
		Annotations: map[string]string{constants.AnnotationAuth: constants.AuthGuestOnly},
	}
	info := &cobra.Command{Use: "info"}

	root.AddCommand(rows, info)
	rows.AddCommand(list, accept)

	tests := []struct {
		cmd  *cobra.Command
		want string
	}{
		{list, constants.AuthRequired},
		{rows, constants.AuthRequired},
		{accept, constants.AuthGuestOnly},
		{info, ""},
		{root, ""},
	}
	for _, tt := range tests {
		if got := authRequirement(tt.cmd); got != tt.want {
			t.Errorf("authRequirement(%s) = %q, want %q", tt.cmd.Name(), got, tt.want)
		}
	}
}
