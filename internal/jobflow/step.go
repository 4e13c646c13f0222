package jobflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"github.com/kballard/go-shellquote"

	"github.com/imamik/emrer/internal/config"
	"github.com/imamik/emrer/internal/util/naming"
)

var stepDirectives = []string{"exec", "script", "dir", "s3", "command"}

// Jars used for step types that are not plain custom jars.
const (
	CommandRunnerJar = "command-runner.jar"
	ScriptRunnerJar  = "s3://elasticmapreduce/libs/script-runner/script-runner.jar"
)

// Steps expands the job's steps, in order, into the EMR Steps list.
func (t *Translator) Steps(ctx context.Context, steps []config.Step, loc Location) ([]types.StepConfig, error) {
	var out []types.StepConfig
	for i, step := range steps {
		converted, err := t.step(ctx, step, loc)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		out = append(out, converted...)
	}
	return out, nil
}

func (t *Translator) step(ctx context.Context, step config.Step, loc Location) ([]types.StepConfig, error) {
	if step.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	if err := exactlyOne(step.Directives(), stepDirectives); err != nil {
		return nil, fmt.Errorf("step %q: %w", step.Name, err)
	}
	loc = loc.override(step.S3Bucket, step.S3Prefix)

	var (
		exec string
		args config.Args
	)

	switch {
	case step.Exec != nil:
		if *step.Exec == "" {
			t.log.Info("exec step has no target set, ignoring it", "step", step.Name)
			return nil, nil
		}
		exec, args = *step.Exec, step.Args

	case step.Script != nil:
		words, err := splitLine(*step.Script)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		if len(words) == 0 {
			t.log.Info("script step has no script set, ignoring it", "step", step.Name)
			return nil, nil
		}
		if loc.Bucket == "" {
			return nil, fmt.Errorf("step %q: %w for script %s", step.Name, ErrBucketUndefined, words[0])
		}
		mode := step.NameOnS3
		if mode == "" {
			mode = naming.ModeRandom
		}
		exec, err = t.stage(ctx, words[0], loc, mode)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		args = prependArgs(words[1:], step.Args)

	case step.Dir != nil:
		return t.stepDir(ctx, step, loc)

	case step.S3 != nil:
		words, err := splitLine(*step.S3)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		if len(words) == 0 {
			t.log.Info("s3 step has no path set, ignoring it", "step", step.Name)
			return nil, nil
		}
		exec, args = withScheme("s3://", words[0]), prependArgs(words[1:], step.Args)

	default:
		words, err := splitLine(*step.Command)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		if len(words) == 0 {
			t.log.Info("command step has no command set, ignoring it", "step", step.Name)
			return nil, nil
		}
		exec, args = withScheme("file://", words[0]), prependArgs(words[1:], step.Args)
	}

	converted, err := t.stepConfig(step, exec, args)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", step.Name, err)
	}
	return []types.StepConfig{converted}, nil
}

// stepDir turns every file in the directory into a script step sharing the
// rest of the step's settings, including its name.
func (t *Translator) stepDir(ctx context.Context, step config.Step, loc Location) ([]types.StepConfig, error) {
	if *step.Dir == "" {
		t.log.Info("dir step has no directory set, ignoring it", "step", step.Name)
		return nil, nil
	}

	files, err := listFiles(*step.Dir)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", step.Name, err)
	}

	var out []types.StepConfig
	for _, file := range files {
		scriptStep := step
		scriptStep.Dir = nil
		line := shellquote.Join(file)
		scriptStep.Script = &line

		converted, err := t.step(ctx, scriptStep, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

// stepConfig builds the final step from the resolved target and arguments.
func (t *Translator) stepConfig(step config.Step, exec string, args config.Args) (types.StepConfig, error) {
	jarStep, err := t.hadoopJarStep(step, exec, args)
	if err != nil {
		return types.StepConfig{}, err
	}

	if step.MainClass != "" {
		jarStep.MainClass = aws.String(step.MainClass)
	}
	for _, p := range step.Properties {
		jarStep.Properties = append(jarStep.Properties, types.KeyValue{
			Key:   aws.String(p.Key),
			Value: aws.String(p.Value),
		})
	}

	return types.StepConfig{
		Name:            aws.String(step.Name),
		ActionOnFailure: t.actionOnFailure(step),
		HadoopJarStep:   jarStep,
	}, nil
}

// actionOnFailure maps on_failure; an unknown value falls back to
// TERMINATE_CLUSTER with a warning.
func (t *Translator) actionOnFailure(step config.Step) types.ActionOnFailure {
	switch strings.ToLower(step.OnFailure) {
	case "", "terminate", "terminate_cluster", "terminate_job_flow":
		return types.ActionOnFailureTerminateCluster
	case "cancel", "wait", "cancel_and_wait":
		return types.ActionOnFailureCancelAndWait
	case "continue":
		return types.ActionOnFailureContinue
	default:
		t.log.Info("invalid on_failure value, using TERMINATE_CLUSTER", "step", step.Name, "on_failure", step.OnFailure)
		return types.ActionOnFailureTerminateCluster
	}
}

func (t *Translator) hadoopJarStep(step config.Step, exec string, args config.Args) (*types.HadoopJarStepConfig, error) {
	stepType := strings.ToLower(step.Type)
	if stepType == "" {
		stepType = "custom_jar"
	}

	switch stepType {
	case "custom", "custom_jar", "custom-jar", "jar":
		strs, err := args.Strings()
		if err != nil {
			return nil, err
		}
		return jarStep(exec, strs), nil

	case "hive", "hive-script", "hive_script":
		return jarStep(CommandRunnerJar, t.hiveArgs(step.Name, exec, args)), nil

	case "shell", "shellscript", "sh":
		strs, err := args.Strings()
		if err != nil {
			return nil, err
		}
		return jarStep(ScriptRunnerJar, append([]string{exec}, strs...)), nil

	case "pig", "pig-script", "pig_script":
		strs, err := args.Strings()
		if err != nil {
			return nil, err
		}
		return jarStep(CommandRunnerJar, append([]string{"pig-script", "--run-pig-script", "--args", "-f", exec}, strs...)), nil

	case "spark", "spark-submit":
		strs, err := args.Strings()
		if err != nil {
			return nil, err
		}
		return jarStep(CommandRunnerJar, append([]string{"spark-submit", exec}, strs...)), nil

	default:
		return nil, fmt.Errorf("%w %q: use custom_jar, hive, shell, pig or spark", ErrUnsupportedStepType, step.Type)
	}
}

// hiveArgs expands {input: X}, {output: X} and {other: X} arguments.
// Anything else is skipped with a warning.
func (t *Translator) hiveArgs(stepName, exec string, args config.Args) []string {
	out := []string{"hive-script", "--run-hive-script", "--args", "-f", exec}
	for _, arg := range args {
		m, ok := arg.(map[string]any)
		if !ok || len(m) != 1 {
			t.log.Info("expected a single key:value pair as hive argument, ignoring it", "step", stepName, "arg", arg)
			continue
		}
		switch {
		case m["input"] != nil:
			out = append(out, "-d", "INPUT="+fmt.Sprint(m["input"]))
		case m["output"] != nil:
			out = append(out, "-d", "OUTPUT="+fmt.Sprint(m["output"]))
		case m["other"] != nil:
			out = append(out, fmt.Sprint(m["other"]))
		default:
			t.log.Info("unknown hive argument, ignoring it", "step", stepName, "arg", arg)
		}
	}
	return out
}

func jarStep(jar string, args []string) *types.HadoopJarStepConfig {
	if args == nil {
		args = []string{}
	}
	return &types.HadoopJarStepConfig{
		Jar:  aws.String(jar),
		Args: args,
	}
}

// prependArgs puts inline arguments from the directive line before the
// configured ones.
func prependArgs(inline []string, configured config.Args) config.Args {
	out := make(config.Args, 0, len(inline)+len(configured))
	for _, a := range inline {
		out = append(out, a)
	}
	return append(out, configured...)
}
