package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackb/groovy-build/pkg/dependency"
	"github.com/stackb/groovy-build/pkg/logger"
	"github.com/stackb/groovy-build/pkg/plugin"
	"github.com/stackb/groovy-build/pkg/project"
	"github.com/stackb/groovy-build/pkg/toolchain"
)

const (
	projectFlag          = "project"
	debugFlag            = "debug"
	groovyPropertiesFlag = "groovy-properties"
	javaPropertiesFlag   = "java-properties"
	toolArchiverFlag     = "tool-archiver"
	progressFlag         = "progress"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GROOVYBUILD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "groovybuild",
		Short:         "Incrementally compile and package Groovy and Java projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(projectFlag, project.DefaultFilename, "the project definition file")
	flags.Bool(debugFlag, false, "log debug output")
	flags.String(groovyPropertiesFlag, toolchain.DefaultPropertiesFile(toolchain.Groovy), "groovy version to home mapping")
	flags.String(javaPropertiesFlag, toolchain.DefaultPropertiesFile(toolchain.Java), "java version to home mapping")
	flags.Bool(toolArchiverFlag, false, "build jars with the JDK jar tool")
	flags.Bool(progressFlag, false, "print step progress to stderr")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	type step func(p *plugin.Plugin) error
	command := func(use, short string, run step) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				log := logger.New(os.Stderr, v.GetBool(debugFlag))
				p, err := newPlugin(log, v)
				if err != nil {
					log.Error().Err(err).Msg(use)
					return err
				}
				if err := run(p); err != nil {
					log.Error().Msg(err.Error())
					return err
				}
				return nil
			},
		}
	}

	root.AddCommand(
		command("clean", "Delete the build directory", func(p *plugin.Plugin) error {
			return p.Clean()
		}),
		command("compile-main", "Compile stale main sources", func(p *plugin.Plugin) error {
			_, err := p.CompileMain()
			return err
		}),
		command("compile-test", "Compile stale test sources", func(p *plugin.Plugin) error {
			_, err := p.CompileTest()
			return err
		}),
		command("jar", "Write the class and source jars", func(p *plugin.Plugin) error {
			_, err := p.Jar()
			return err
		}),
		command("doc", "Render API documentation", func(p *plugin.Plugin) error {
			_, err := p.Document()
			return err
		}),
		command("build", "Compile main and test sources and write the jars", func(p *plugin.Plugin) error {
			return p.Build()
		}),
	)

	return root
}

// newPlugin loads the project definition and toolchain configuration.
// A toolchain properties file that cannot be loaded only fails the step that
// needs its toolchain.
func newPlugin(log zerolog.Logger, v *viper.Viper) (*plugin.Plugin, error) {
	proj, err := project.Load(log, v.GetString(projectFlag))
	if err != nil {
		return nil, err
	}

	toolchains := plugin.Toolchains{
		Homes:          make(map[toolchain.Kind]toolchain.Homes),
		PropertiesFile: make(map[toolchain.Kind]string),
		LoadErrors:     make(map[toolchain.Kind]error),
	}
	for kind, flag := range map[toolchain.Kind]string{
		toolchain.Groovy: groovyPropertiesFlag,
		toolchain.Java:   javaPropertiesFlag,
	} {
		filename := v.GetString(flag)
		toolchains.PropertiesFile[kind] = filename
		homes, err := toolchain.LoadProperties(kind, filename)
		if err != nil {
			toolchains.LoadErrors[kind] = err
			continue
		}
		toolchains.Homes[kind] = homes
	}

	var resolver dependency.Resolver
	if !proj.Dependencies.Empty() {
		var lockFile string
		if proj.Settings.LockFile != "" {
			lockFile = proj.Path(proj.Settings.LockFile)
		}
		r, err := dependency.NewLockFileResolver(log, lockFile, proj.Path(proj.Settings.RepositoryDir))
		if err != nil {
			return nil, fmt.Errorf("configuring dependency resolver: %w", err)
		}
		resolver = r
	}

	options := []plugin.Option{}
	if v.GetBool(toolArchiverFlag) {
		options = append(options, plugin.WithToolArchiver())
	}
	if v.GetBool(progressFlag) {
		options = append(options, plugin.WithProgress(mobyprogress.NewProgressOutput(mobyprogress.NewOut(os.Stderr))))
	}

	return plugin.New(log, proj, resolver, toolchains, options...), nil
}
