package cmd

import (
	"github.com/shouni/go-shot-prompt-kit/internal/pipeline"
	"github.com/shouni/go-shot-prompt-kit/pkg/domain"

	"github.com/spf13/cobra"
)

var (
	patchFile       string
	patchBackground string
	patchWardrobe   string
	patchPalette    string
)

// continuityCmd は、ショット間で共有する継続性レコードを操作するのだ。
var continuityCmd = &cobra.Command{
	Use:   "continuity",
	Short: "背景・パレット・衣装・商品DNA・キャラクターの継続性レコードを操作するのだ。",
}

var continuityGetCmd = &cobra.Command{
	Use:   "get",
	Short: "現在の継続性レコードを表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ShowContinuity(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

var continuitySetCmd = &cobra.Command{
	Use:   "set",
	Short: "パッチをマージして継続性レコードを保存するのだ。",
	Long: `--patch-file に JSON か YAML の部分レコードを渡すか、個別のフラグで項目を指定するのだ。
指定しなかった項目はそのまま残るのだよ。`,
	Args: cobra.NoArgs,
	RunE: continuitySetCommand,
}

var continuityResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "継続性レコードを既定値に戻すのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ResetContinuity(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	continuitySetCmd.Flags().StringVarP(&patchFile, "patch-file", "p", "", "部分レコードのファイルパス（'-'で標準入力なのだ）。")
	continuitySetCmd.Flags().StringVar(&patchBackground, "background", "", "背景を上書きするのだ。")
	continuitySetCmd.Flags().StringVar(&patchWardrobe, "wardrobe", "", "衣装を上書きするのだ。")
	continuitySetCmd.Flags().StringVar(&patchPalette, "palette", "", "カンマ区切りのカラーパレットで上書きするのだ。")

	continuityCmd.AddCommand(continuityGetCmd, continuitySetCmd, continuityResetCmd)
}

func continuitySetCommand(cmd *cobra.Command, args []string) error {
	var patch domain.ContinuityPatch
	if cmd.Flags().Changed("background") {
		patch.Background = &patchBackground
	}
	if cmd.Flags().Changed("wardrobe") {
		patch.Wardrobe = &patchWardrobe
	}
	if cmd.Flags().Changed("palette") {
		patch.Palette = domain.StringList(domain.SplitList(patchPalette))
	}
	return pipeline.UpdateContinuity(cmd.Context(), opts, patchFile, patch, cmd.InOrStdin(), cmd.OutOrStdout())
}
