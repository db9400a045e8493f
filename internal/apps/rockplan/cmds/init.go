package rockplan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/rockfile"
	"github.com/rockplan/rockplan/internal/ui"
)

var supportedBases = []string{"ubuntu@24.04", "ubuntu@22.04", "ubuntu@20.04", "bare"}

var supportedArches = []string{"amd64", "arm64", "armhf", "ppc64el", "riscv64", "s390x"}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [PATH]",
		Short: "Scaffold a rockcraft.yaml in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initCmdRunE,
	}
}

func initCmdRunE(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	target := filepath.Join(dir, rockfile.Filename)
	if _, err := os.Stat(target); err == nil {
		overwrite, err := ui.Confirm(fmt.Sprintf("%s already exists. Overwrite?", target), false)
		if err != nil {
			return err
		}
		if !overwrite {
			logs.Infof("keeping existing %s", target)
			return nil
		}
	}

	defName := filepath.Base(absOrSelf(dir))
	name, err := ui.AskInput("Rock name:", defName, true)
	if err != nil {
		return err
	}
	version, err := ui.AskInput("Version:", "0.1.0", true)
	if err != nil {
		return err
	}
	summary, err := ui.AskInput("Summary:", "", false)
	if err != nil {
		return err
	}
	base, err := ui.AskSelect("Base:", supportedBases, supportedBases[0])
	if err != nil {
		return err
	}
	arches, err := ui.AskMultiSelect("Platforms:", supportedArches, []string{"amd64"})
	if err != nil {
		return err
	}

	rf := rockfile.Rockfile{
		Name:    name,
		Version: version,
		Summary: summary,
		Base:    base,
	}
	if len(arches) > 0 {
		rf.Platforms = make(map[string]*rockfile.Platform, len(arches))
		for _, arch := range arches {
			rf.Platforms[arch] = nil
		}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}

	logs.Infof("wrote %s", target)
	return nil
}

func absOrSelf(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
