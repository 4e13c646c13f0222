package jobflow

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"github.com/kballard/go-shellquote"

	"github.com/imamik/emrer/internal/config"
	"github.com/imamik/emrer/internal/util/naming"
)

var bootstrapDirectives = []string{"script", "dir", "s3", "command"}

// cleanupPath is the node-local command used to remove a staged script.
const cleanupPath = "file://aws"

// BootstrapActions expands the job's bootstrap actions, in order, into the
// EMR BootstrapActions list. loc is the staging location used when an action
// does not set its own bucket or prefix.
func (t *Translator) BootstrapActions(ctx context.Context, actions []config.BootstrapAction, loc Location) ([]types.BootstrapActionConfig, error) {
	var out []types.BootstrapActionConfig
	for i, action := range actions {
		converted, err := t.bootstrapAction(ctx, action, loc)
		if err != nil {
			return nil, fmt.Errorf("bootstrap_actions[%d]: %w", i, err)
		}
		out = append(out, converted...)
	}
	return out, nil
}

func (t *Translator) bootstrapAction(ctx context.Context, action config.BootstrapAction, loc Location) ([]types.BootstrapActionConfig, error) {
	loc = loc.override(action.S3Bucket, action.S3Prefix)

	if err := exactlyOne(action.Directives(), bootstrapDirectives); err != nil {
		return nil, err
	}

	switch {
	case action.Script != nil:
		return t.bootstrapScript(ctx, action, loc)
	case action.Dir != nil:
		return t.bootstrapDir(ctx, action, loc)
	case action.S3 != nil:
		return t.bootstrapRemote(action, *action.S3, "s3", "s3://")
	default:
		return t.bootstrapRemote(action, *action.Command, "command", "file://")
	}
}

// bootstrapScript stages a local script and points the action at it.
func (t *Translator) bootstrapScript(ctx context.Context, action config.BootstrapAction, loc Location) ([]types.BootstrapActionConfig, error) {
	words, err := splitLine(*action.Script)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		t.log.Info("script bootstrap action has no script set, ignoring it", "name", action.Name)
		return nil, nil
	}
	script := words[0]

	if loc.Bucket == "" {
		return nil, fmt.Errorf("%w for script %s", ErrBucketUndefined, script)
	}

	confArgs, err := action.Args.Strings()
	if err != nil {
		return nil, err
	}

	mode := action.NameOnS3
	if mode == "" {
		mode = naming.ModeFilename
	}
	actionPath, err := t.stage(ctx, script, loc, mode)
	if err != nil {
		return nil, err
	}

	name := action.Name
	if name == "" {
		name = defaultName(*action.Script)
	}

	actions := []types.BootstrapActionConfig{
		scriptAction(name, actionPath, append(words[1:], confArgs...)),
	}

	// The cleanup runs right after the script on each node; nodes that
	// bootstrap later still need the object, so this is only safe for
	// scripts that are not needed after launch.
	if action.Cleanup {
		actions = append(actions, scriptAction(name+"-cleanup", cleanupPath, []string{"s3", "rm", actionPath}))
	}

	return actions, nil
}

// bootstrapDir treats every file in the directory as a script action that
// inherits the rest of the action's settings.
func (t *Translator) bootstrapDir(ctx context.Context, action config.BootstrapAction, loc Location) ([]types.BootstrapActionConfig, error) {
	if *action.Dir == "" {
		t.log.Info("dir bootstrap action has no directory set, ignoring it", "name", action.Name)
		return nil, nil
	}

	files, err := listFiles(*action.Dir)
	if err != nil {
		return nil, err
	}

	var out []types.BootstrapActionConfig
	for _, file := range files {
		scriptAction := action
		scriptAction.Dir = nil
		line := shellquote.Join(file)
		scriptAction.Script = &line
		if scriptAction.Name == "" {
			scriptAction.Name = defaultName(file)
		}

		converted, err := t.bootstrapScript(ctx, scriptAction, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

// bootstrapRemote handles s3 and command actions, whose target already exists.
func (t *Translator) bootstrapRemote(action config.BootstrapAction, line, directive, scheme string) ([]types.BootstrapActionConfig, error) {
	words, err := splitLine(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		t.log.Info(directive+" bootstrap action has no path set, ignoring it", "name", action.Name)
		return nil, nil
	}

	confArgs, err := action.Args.Strings()
	if err != nil {
		return nil, err
	}

	actionPath := withScheme(scheme, words[0])
	name := action.Name
	if name == "" {
		name = defaultName(path.Base(actionPath))
	}

	return []types.BootstrapActionConfig{
		scriptAction(name, actionPath, append(words[1:], confArgs...)),
	}, nil
}

func scriptAction(name, actionPath string, args []string) types.BootstrapActionConfig {
	if args == nil {
		args = []string{}
	}
	return types.BootstrapActionConfig{
		Name: aws.String(name),
		ScriptBootstrapAction: &types.ScriptBootstrapActionConfig{
			Path: aws.String(actionPath),
			Args: args,
		},
	}
}
