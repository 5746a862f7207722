package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var deviceIDCmd = &cobra.Command{
	Use:   "device-id",
	Short: "Print this machine's stable device identifier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			if jsonOutput {
				outputJSON(map[string]string{"deviceId": ws.DeviceID()})
				return nil
			}
			fmt.Println(ws.DeviceID())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(deviceIDCmd)
}
