package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/qsim"
	"github.com/theapemachine/qsim/circuit"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("qsim", pflag.ContinueOnError)
	flags.StringP("file", "f", "", "QASM circuit file to run")
	flags.StringP("example", "e", "bell", "built-in circuit when no file is given ("+exampleNames()+")")
	flags.IntP("shots", "n", 1024, "number of shots")
	flags.Uint64("seed", 0, "measurement RNG seed, 0 for random")
	flags.Int("max-qubits", qsim.NewConfig().MaxQubits, "largest register to allocate")
	flags.Bool("state", false, "print the amplitudes left by the last shot")
	flags.Bool("metrics", false, "print simulator metrics")

	if err := flags.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("QSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	src, title, err := source(v)
	if err != nil {
		return err
	}

	prog, err := circuit.Parse(src)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := qsim.NewConfig()
	config.Seed = v.GetUint64("seed")
	config.MaxQubits = v.GetInt("max-qubits")

	result, err := circuit.Execute(ctx, prog, v.GetInt("shots"), qsim.WithConfig(config))
	if err != nil {
		return err
	}

	fmt.Println(renderHistogram(title, result))
	if v.GetBool("state") {
		fmt.Println(renderState(result.Final, prog.NumQubits))
	}
	if v.GetBool("metrics") {
		fmt.Println(renderMetrics(result.Metrics))
	}
	return nil
}

func source(v *viper.Viper) (src, title string, err error) {
	if path := v.GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", err
		}
		return string(data), path, nil
	}

	name := v.GetString("example")
	src, ok := examples[name]
	if !ok {
		return "", "", fmt.Errorf("unknown example %q, want one of %s", name, exampleNames())
	}
	return src, name, nil
}

func exampleNames() string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
