package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/histoquant/nucfeat/internal/imagery"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info IMAGE",
	Short: "Print metadata about an image file",
	Long:  `Print dimensions, format, color depth, channel layout, and file size of an image.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := imagery.LoadInfo(imagery.NewCache(), args[0])
	if err != nil {
		return err
	}

	grayscale := "no"
	if info.Grayscale {
		grayscale = "yes"
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	table.Append("Width", strconv.Itoa(info.Width))
	table.Append("Height", strconv.Itoa(info.Height))
	table.Append("Format", info.Format)
	table.Append("Color depth", info.ColorDepth)
	table.Append("Grayscale", grayscale)
	table.Append("File size", strconv.FormatInt(info.FileSizeBytes, 10)+" bytes")
	table.Render()

	return nil
}
