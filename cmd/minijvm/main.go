package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"minijvm/internal/bytecode"
	"minijvm/internal/classes"
	"minijvm/internal/classfile"
	"minijvm/internal/gfunction"
	"minijvm/internal/interp"
)

var classpath []string

// exitCode maps the core's error taxonomy (spec.md §7) onto process exit
// codes a shell script can branch on.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, classfile.ErrBadMagic), errors.Is(err, classfile.ErrTruncated),
		errors.Is(err, classfile.ErrUnknownTag), errors.Is(err, classfile.ErrBadReference),
		errors.Is(err, bytecode.ErrUnknownOpcode), errors.Is(err, bytecode.ErrBadBranchTarget):
		return 2 // DecodeError
	case errors.Is(err, classes.ErrUnknownClass), errors.Is(err, classes.ErrUnknownMethod),
		errors.Is(err, classes.ErrUnknownField):
		return 3 // LinkError
	case errors.Is(err, classes.ErrNotImplemented):
		return 5 // NotImplementedError
	default:
		return 4 // RuntimeError
	}
}

func run(cmd *cobra.Command, args []string) {
	class, method := args[0], args[1]

	reg := classes.NewRegistry(classpath...)
	gfunction.RegisterAll(reg)

	result, err := interp.Run(context.Background(), reg, class, method)
	if err != nil {
		log.Printf("minijvm: %s", err)
		os.Exit(exitCode(err))
	}

	fmt.Println(result)
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "minijvm <class> <method>",
		Short: "A minimal class-file interpreter",
		Long:  "minijvm decodes a compiled class file and runs one of its static methods, with no bytecode verification, garbage collection tuning, or JIT.",
		Args:  cobra.ExactArgs(2),
		Run:   run,
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("minijvm 0.1.0")
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringSliceVar(&classpath, "classpath", nil, "directory to search for compiled classes (repeatable)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
