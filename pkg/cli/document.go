package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newDocumentCmd() *cobra.Command {
	var meta map[string]string

	cmd := &cobra.Command{
		Use:   "document [text]",
		Short: "Store a JSON document in the raw zone",
		Long: "Stores the given text (or stdin when omitted) as a JSON document in the\n" +
			"raw zone under documents/, assigning a UUID id and a content hash.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(raw)
			}
			id, err := a.steps.StoreDocument(cmd.Context(), text, meta)
			if err != nil {
				a.logger.Error("step failed", "step", "document", "error", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	addMetadataFlag(cmd.Flags(), &meta)
	return cmd
}

func addMetadataFlag(fs *pflag.FlagSet, meta *map[string]string) {
	fs.StringToStringVar(meta, "metadata", nil, "document metadata as key=value pairs")
}
