package adt

import (
	"fmt"
	"os"

	"github.com/wnxd/adtfmt/debugger"
	"github.com/wnxd/adtfmt/script"
	"go.uber.org/multierr"
)

const ExtensionName = "adt_formatters"

// Init registers the adt formatters with the default configuration.
func Init(dbg debugger.Debugger) error {
	return InitWith(DefaultConfig())(dbg)
}

func InitWith(cfg *Config) debugger.InitFunc {
	return func(dbg debugger.Debugger) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		var err error
		summary := cfg.StringSummary()
		for _, name := range cfg.String.Types {
			err = multierr.Append(err, bindSummary(dbg, debugger.Exact(name), name, summary.Format))
		}

		if cfg.vecEnabled() {
			err = multierr.Append(err, bindVec(dbg, cfg.Vec, cfg.VecLayout()))
		}

		for _, sc := range cfg.Scripts {
			err = multierr.Append(err, bindScript(dbg, sc))
		}
		return err
	}
}

func bindSummary(dbg debugger.Debugger, match debugger.Match, label string, fn debugger.SummaryFormatter) error {
	if err := dbg.AddSummary(match, fn); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	registered(dbg, label)
	return nil
}

func bindVec(dbg debugger.Debugger, vc *VecConfig, layout VecLayout) error {
	if err := dbg.AddSynthetic(vc.Match, layout.Provider); err != nil {
		return fmt.Errorf("%s: %w", vc.label(), err)
	}
	var err error
	if vc.Summary {
		err = dbg.AddSummary(vc.Match, layout.Summary)
	}
	registered(dbg, vc.label())
	return err
}

func bindScript(dbg debugger.Debugger, sc ScriptConfig) error {
	source := sc.Source
	if source == "" {
		data, err := os.ReadFile(sc.File)
		if err != nil {
			return err
		}
		source = string(data)
	}
	name := sc.Name
	if name == "" {
		name = sc.Match.Pattern
	}
	s, err := script.Compile(name, source)
	if err != nil {
		return err
	}
	return bindSummary(dbg, sc.Match, name, s.Format)
}

func registered(dbg debugger.Debugger, name string) {
	fmt.Fprintf(dbg.Output(), "Registered custom formatter for %s.\n", name)
	dbg.Logger().Debugw("formatter registered", "type", name)
}
