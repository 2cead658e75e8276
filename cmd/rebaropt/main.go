// rebaropt — rebar fabrication cut-list optimizer
//
// Build:
//
//	go build -o rebaropt ./cmd/rebaropt
//
// Usage:
//
//	rebaropt solve -in project.xlsx [-seed N]
//	rebaropt compare -in project.xlsx [-seed N]
//	rebaropt report -in project.xlsx -out report.pdf [-tags tags.pdf]
//	rebaropt import -csv pieces.csv -in project.xlsx -out project.xlsx
//	rebaropt presets list|apply
//	rebaropt templates list|save|apply
//	rebaropt config show|set
//	rebaropt backup export|import
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rafiqul27/RebarOpt/internal/catalog"
	"github.com/rafiqul27/RebarOpt/internal/importer"
	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/project"
	"github.com/rafiqul27/RebarOpt/internal/report"
	"github.com/rafiqul27/RebarOpt/internal/solver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = runSolve(os.Args[2:])
	case "compare":
		err = runCompare(os.Args[2:])
	case "report":
		err = runReport(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "presets":
		err = runPresets(os.Args[2:])
	case "templates":
		err = runTemplates(os.Args[2:])
	case "config":
		err = runConfig(os.Args[2:])
	case "backup":
		err = runBackup(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "rebaropt: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "rebaropt: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: rebaropt <solve|compare|report|import|presets|templates|config|backup> [flags]")
}

func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	in := fs.String("in", "", "path to the .xlsx project file")
	seed := fs.Int64("seed", 1, "Monte Carlo seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("solve: -in is required")
	}

	p, err := project.LoadProjectFile(*in)
	if err != nil {
		return err
	}
	if err := rememberProject(*in); err != nil {
		return err
	}

	result, err := solver.Solve(p.Runs, p.Direct, p.Settings, p.Stock, p.Rules, p.Inventory, *seed)
	if err != nil {
		return err
	}

	printSummary(p.Name, result)
	return nil
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	in := fs.String("in", "", "path to the .xlsx project file")
	seed := fs.Int64("seed", 1, "Monte Carlo seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("compare: -in is required")
	}

	p, err := project.LoadProjectFile(*in)
	if err != nil {
		return err
	}
	if err := rememberProject(*in); err != nil {
		return err
	}

	scenarios := solver.BuildDefaultScenarios(p.Settings)
	results, err := solver.CompareScenarios(scenarios, p.Runs, p.Direct, p.Stock, p.Rules, p.Inventory, *seed)
	if err != nil {
		return err
	}

	fmt.Printf("%-22s %10s %10s %10s\n", "Scenario", "StockBars", "Waste%", "Warnings")
	for _, r := range results {
		fmt.Printf("%-22s %10d %9.2f%% %10d\n", r.Scenario.Name, r.StockBars, r.WastePercent, r.WarningCount)
	}
	return nil
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	in := fs.String("in", "", "path to the .xlsx project file")
	out := fs.String("out", "report.pdf", "output PDF path")
	tagsOut := fs.String("tags", "", "optional piece-tag sheet PDF path")
	seed := fs.Int64("seed", 1, "Monte Carlo seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("report: -in is required")
	}

	p, err := project.LoadProjectFile(*in)
	if err != nil {
		return err
	}
	if err := rememberProject(*in); err != nil {
		return err
	}

	result, err := solver.Solve(p.Runs, p.Direct, p.Settings, p.Stock, p.Rules, p.Inventory, *seed)
	if err != nil {
		return err
	}

	if err := report.ExportPDF(*out, result, p.Name); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *out)

	if *tagsOut != "" {
		diaByRun := make(map[string]int, len(p.Runs))
		for _, r := range p.Runs {
			diaByRun[r.ID] = r.Dia
		}
		var tags []report.TagInfo
		for _, dia := range uniqueDias(p.Runs) {
			var plans []model.SplicePlanItem
			for _, item := range result.SplicePlan {
				if diaByRun[item.RunID] == dia {
					plans = append(plans, item)
				}
			}
			tags = append(tags, report.CollectTagInfos(plans, dia)...)
		}
		if err := report.ExportTagSheet(*tagsOut, tags); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *tagsOut)
	}
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	csvPath := fs.String("csv", "", "path to a CSV of fixed pieces")
	in := fs.String("in", "", "path to the .xlsx project file to update")
	out := fs.String("out", "", "path to write the updated .xlsx project file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *csvPath == "" || *in == "" || *out == "" {
		return fmt.Errorf("import: -csv, -in, and -out are all required")
	}

	p, err := project.LoadProjectFile(*in)
	if err != nil {
		return err
	}

	result := importer.ImportCSV(*csvPath)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "import warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "import error: %s\n", e)
	}
	if len(result.Pieces) == 0 {
		return fmt.Errorf("import: no valid fixed pieces parsed from %s", *csvPath)
	}

	lib, err := catalog.LoadPresetLibrary(presetLibraryPath())
	if err != nil {
		return err
	}
	for _, dia := range importer.ApplyLapRulePresets(result.Pieces, lib) {
		fmt.Fprintf(os.Stderr, "import warning: no lap rule preset for dia %d, using rule-set fallback\n", dia)
	}

	p.Direct = append(p.Direct, result.Pieces...)
	if err := project.SaveProjectFile(*out, p); err != nil {
		return err
	}
	if err := rememberProject(*out); err != nil {
		return err
	}
	fmt.Printf("imported %d fixed pieces into %s\n", len(result.Pieces), *out)
	return nil
}

// runPresets manages the saved stock/lap-rule preset library at
// catalog.DefaultPresetLibraryPath, seeding it with DefaultPresetLibrary
// on first use.
func runPresets(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("presets: expected a subcommand (list|apply)")
	}
	switch args[0] {
	case "list":
		return runPresetsList(args[1:])
	case "apply":
		return runPresetsApply(args[1:])
	default:
		return fmt.Errorf("presets: unknown subcommand %q", args[0])
	}
}

func runPresetsList(args []string) error {
	fs := flag.NewFlagSet("presets list", flag.ExitOnError)
	path := fs.String("path", "", "preset library path (default ~/.rebaropt/presets.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	libPath := *path
	if libPath == "" {
		libPath = presetLibraryPath()
	}
	lib, err := catalog.LoadPresetLibrary(libPath)
	if err != nil {
		return err
	}

	fmt.Println("Stock catalog presets:")
	for _, sc := range lib.StockCatalogs {
		fmt.Printf("  %-10s dia=%-4d %v\n", sc.ID, sc.Dia, sc.StockLengths)
	}
	fmt.Println("Lap rule presets:")
	for _, lr := range lib.LapRules {
		fmt.Printf("  %-10s dia=%-4d %-12s %d mm\n", lr.ID, lr.Dia, lr.LapCase, lr.LapMm)
	}
	return nil
}

// runPresetsApply merges every preset's stock catalog and lap rule into
// a project file, de-duplicating by diameter and lap case.
func runPresetsApply(args []string) error {
	fs := flag.NewFlagSet("presets apply", flag.ExitOnError)
	in := fs.String("in", "", "path to the .xlsx project file")
	out := fs.String("out", "", "path to write the updated .xlsx project file")
	path := fs.String("path", "", "preset library path (default ~/.rebaropt/presets.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("presets apply: -in and -out are required")
	}

	libPath := *path
	if libPath == "" {
		libPath = presetLibraryPath()
	}
	lib, err := catalog.LoadPresetLibrary(libPath)
	if err != nil {
		return err
	}

	p, err := project.LoadProjectFile(*in)
	if err != nil {
		return err
	}

	stockByDia := make(map[int]bool, len(p.Stock))
	for _, s := range p.Stock {
		stockByDia[s.Dia] = true
	}
	for _, sc := range lib.StockCatalogs {
		if !stockByDia[sc.Dia] {
			p.Stock = append(p.Stock, sc.ToStockCatalogItem())
			stockByDia[sc.Dia] = true
		}
	}

	type ruleKey struct {
		dia int
		lc  model.LapCase
	}
	rulesByKey := make(map[ruleKey]bool, len(p.Rules))
	for _, r := range p.Rules {
		rulesByKey[ruleKey{r.Dia, r.LapCase}] = true
	}
	for _, lr := range lib.LapRules {
		k := ruleKey{lr.Dia, lr.LapCase}
		if !rulesByKey[k] {
			p.Rules = append(p.Rules, lr.ToLapRule())
			rulesByKey[k] = true
		}
	}

	if err := project.SaveProjectFile(*out, p); err != nil {
		return err
	}
	fmt.Printf("applied presets from %s into %s\n", libPath, *out)
	return nil
}

// runTemplates manages the saved run-template store at
// catalog.DefaultTemplateStorePath.
func runTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("templates: expected a subcommand (list|save|apply)")
	}
	switch args[0] {
	case "list":
		return runTemplatesList(args[1:])
	case "save":
		return runTemplatesSave(args[1:])
	case "apply":
		return runTemplatesApply(args[1:])
	default:
		return fmt.Errorf("templates: unknown subcommand %q", args[0])
	}
}

func templateStorePath(path string) string {
	if path != "" {
		return path
	}
	return templateStoreDefaultPath()
}

func runTemplatesList(args []string) error {
	fs := flag.NewFlagSet("templates list", flag.ExitOnError)
	path := fs.String("path", "", "template store path (default ~/.rebaropt/templates.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ts, err := catalog.LoadTemplateStore(templateStorePath(*path))
	if err != nil {
		return err
	}

	for _, t := range ts.Templates {
		fmt.Printf("%-10s %-24s runs=%-3d pieces=%-3d  %s\n", t.ID, t.Name, len(t.Runs), len(t.DirectPieces), t.Description)
	}
	return nil
}

// runTemplatesSave captures an existing project file's runs, fixed
// pieces, and settings as a new named, reusable template.
func runTemplatesSave(args []string) error {
	fs := flag.NewFlagSet("templates save", flag.ExitOnError)
	in := fs.String("in", "", "path to the .xlsx project file to capture")
	name := fs.String("name", "", "template name")
	desc := fs.String("desc", "", "template description")
	path := fs.String("path", "", "template store path (default ~/.rebaropt/templates.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *name == "" {
		return fmt.Errorf("templates save: -in and -name are required")
	}

	p, err := project.LoadProjectFile(*in)
	if err != nil {
		return err
	}

	storePath := templateStorePath(*path)
	ts, err := catalog.LoadTemplateStore(storePath)
	if err != nil {
		return err
	}

	t := catalog.NewRunTemplate(*name, *desc, p.Runs, p.Direct, p.Settings)
	ts.Add(t)
	if err := catalog.SaveTemplateStore(storePath, ts); err != nil {
		return err
	}
	fmt.Printf("saved template %s (%s)\n", t.ID, t.Name)
	return nil
}

// runTemplatesApply materializes a saved template into a new project file.
func runTemplatesApply(args []string) error {
	fs := flag.NewFlagSet("templates apply", flag.ExitOnError)
	id := fs.String("id", "", "template ID")
	out := fs.String("out", "", "path to write the new .xlsx project file")
	path := fs.String("path", "", "template store path (default ~/.rebaropt/templates.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *out == "" {
		return fmt.Errorf("templates apply: -id and -out are required")
	}

	ts, err := catalog.LoadTemplateStore(templateStorePath(*path))
	if err != nil {
		return err
	}

	t := ts.FindByID(*id)
	if t == nil {
		return fmt.Errorf("templates apply: no template with ID %s", *id)
	}

	p := project.Project{
		Name:     t.Name,
		Settings: t.Settings,
		Runs:     t.Runs,
		Direct:   t.DirectPieces,
	}
	if err := project.SaveProjectFile(*out, p); err != nil {
		return err
	}
	fmt.Printf("applied template %s into %s\n", t.Name, *out)
	return nil
}

// runConfig inspects and edits the saved application preferences at
// project.DefaultConfigPath.
func runConfig(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("config: expected a subcommand (show|set)")
	}
	switch args[0] {
	case "show":
		return runConfigShow(args[1:])
	case "set":
		return runConfigSet(args[1:])
	default:
		return fmt.Errorf("config: unknown subcommand %q", args[0])
	}
}

func configPath(path string) string {
	if path != "" {
		return path
	}
	return project.DefaultConfigPath()
}

func runConfigShow(args []string) error {
	fs := flag.NewFlagSet("config show", flag.ExitOnError)
	path := fs.String("path", "", "config path (default ~/.rebaropt/config.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config, err := project.LoadAppConfig(configPath(*path))
	if err != nil {
		return err
	}

	fmt.Printf("rounding step: %d mm\n", config.DefaultRoundingStepMm)
	fmt.Printf("kerf:          %d mm\n", config.DefaultKerfMm)
	fmt.Printf("min leftover:  %d mm\n", config.DefaultMinLeftoverMm)
	fmt.Printf("beam depth:    %d mm\n", config.DefaultBeamDepthMm)
	fmt.Printf("allow offcuts: %t\n", config.DefaultAllowOffcuts)
	fmt.Printf("opt level:     %s\n", config.DefaultOptimizationLevel)
	fmt.Printf("inv strategy:  %s\n", config.DefaultInventoryStrategy)
	if len(config.RecentProjects) > 0 {
		fmt.Println("recent projects:")
		for _, p := range config.RecentProjects {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func runConfigSet(args []string) error {
	fs := flag.NewFlagSet("config set", flag.ExitOnError)
	path := fs.String("path", "", "config path (default ~/.rebaropt/config.json)")
	rounding := fs.Int("rounding", -1, "default rounding step in mm (-1 leaves unchanged)")
	kerf := fs.Int("kerf", -1, "default kerf in mm (-1 leaves unchanged)")
	minLeftover := fs.Int("min-leftover", -1, "default minimum leftover in mm (-1 leaves unchanged)")
	beamDepth := fs.Int("beam-depth", -1, "default beam depth in mm (-1 leaves unchanged)")
	allowOffcuts := fs.String("allow-offcuts", "", "true|false (empty leaves unchanged)")
	level := fs.String("level", "", "FAST|BALANCED|DEEP (empty leaves unchanged)")
	strategy := fs.String("strategy", "", "SEQUENTIAL|MIXED (empty leaves unchanged)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfgPath := configPath(*path)
	config, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return err
	}

	if *rounding >= 0 {
		config.DefaultRoundingStepMm = *rounding
	}
	if *kerf >= 0 {
		config.DefaultKerfMm = *kerf
	}
	if *minLeftover >= 0 {
		config.DefaultMinLeftoverMm = *minLeftover
	}
	if *beamDepth >= 0 {
		config.DefaultBeamDepthMm = *beamDepth
	}
	if *allowOffcuts != "" {
		config.DefaultAllowOffcuts = *allowOffcuts == "true"
	}
	if *level != "" {
		config.DefaultOptimizationLevel = model.OptimizationLevel(*level)
	}
	if *strategy != "" {
		config.DefaultInventoryStrategy = model.InventoryStrategy(*strategy)
	}

	if err := project.SaveAppConfig(cfgPath, config); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", cfgPath)
	return nil
}

// runBackup exports/imports the bundle of app config, presets, and
// templates that together make up a user's saved preferences.
func runBackup(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("backup: expected a subcommand (export|import)")
	}
	switch args[0] {
	case "export":
		return runBackupExport(args[1:])
	case "import":
		return runBackupImport(args[1:])
	default:
		return fmt.Errorf("backup: unknown subcommand %q", args[0])
	}
}

func runBackupExport(args []string) error {
	fs := flag.NewFlagSet("backup export", flag.ExitOnError)
	out := fs.String("out", "", "path to write the backup JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("backup export: -out is required")
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}
	presets, err := catalog.LoadPresetLibrary(presetLibraryPath())
	if err != nil {
		return err
	}
	templates, err := catalog.LoadTemplateStore(templateStoreDefaultPath())
	if err != nil {
		return err
	}

	if err := project.ExportAllData(*out, config, presets, templates); err != nil {
		return err
	}
	fmt.Printf("exported backup to %s\n", *out)
	return nil
}

func runBackupImport(args []string) error {
	fs := flag.NewFlagSet("backup import", flag.ExitOnError)
	in := fs.String("in", "", "path to the backup JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("backup import: -in is required")
	}

	backup, err := project.ImportAllData(*in)
	if err != nil {
		return err
	}

	if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
		return err
	}
	if err := catalog.SavePresetLibrary(presetLibraryPath(), backup.Presets); err != nil {
		return err
	}
	if err := catalog.SaveTemplateStore(templateStoreDefaultPath(), backup.Templates); err != nil {
		return err
	}
	fmt.Printf("restored config, %d stock presets, %d lap presets, %d templates from %s\n",
		len(backup.Presets.StockCatalogs), len(backup.Presets.LapRules), len(backup.Templates.Templates), *in)
	return nil
}

// presetLibraryPath and templateStoreDefaultPath fall back to "" on a
// HomeDir lookup failure; the subsequent Load/Save call then fails on the
// empty path and returns that file error instead of the HomeDir error.
func presetLibraryPath() string {
	p, err := catalog.DefaultPresetLibraryPath()
	if err != nil {
		return ""
	}
	return p
}

func templateStoreDefaultPath() string {
	p, err := catalog.DefaultTemplateStorePath()
	if err != nil {
		return ""
	}
	return p
}

// rememberProject records path in the saved app config's recent-projects
// list. The solve, compare, report and import commands call it; presets
// apply and templates save/apply read or write project files without
// updating the list.
func rememberProject(path string) error {
	cfgPath := project.DefaultConfigPath()
	config, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return err
	}
	config = project.RememberProject(config, path)
	return project.SaveAppConfig(cfgPath, config)
}

func printSummary(name string, result model.OptimizationResult) {
	s := result.Summary
	if name != "" {
		fmt.Printf("Project: %s\n", name)
	}
	fmt.Printf("Stock bars:    %d\n", s.TotalStockBars)
	fmt.Printf("Input length:  %d mm\n", s.TotalInputLengthMm)
	fmt.Printf("Parts length:  %d mm\n", s.TotalPartsLengthMm)
	fmt.Printf("Waste:         %d mm (%.2f%%)\n", s.TotalWasteMm, s.WastePercent)
	fmt.Printf("Weight:        %.2f kg\n", s.TotalWeightKg)
	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}

func uniqueDias(runs []model.BarRun) []int {
	seen := map[int]bool{}
	var out []int
	for _, r := range runs {
		if !seen[r.Dia] {
			seen[r.Dia] = true
			out = append(out, r.Dia)
		}
	}
	return out
}
