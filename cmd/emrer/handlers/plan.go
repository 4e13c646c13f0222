package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	awsemr "github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/emrer/internal/jobflow"
)

// Output formats accepted by Plan.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// planView is the JSON form of a plan.
type planView struct {
	Request *awsemr.RunJobFlowInput `json:"request"`
	Uploads []planUpload            `json:"uploads"`
}

type planUpload struct {
	LocalPath string `json:"local_path"`
	URI       string `json:"uri"`
}

// Plan translates the job without touching AWS and prints the request that
// run would submit together with the uploads it would make.
//
// With an empty output format, a terminal gets styled text and anything else
// gets JSON.
func Plan(ctx context.Context, configPath, output string) error {
	if output == "" {
		output = OutputJSON
		if isInteractiveTTY() {
			output = OutputText
		}
	}
	if output != OutputText && output != OutputJSON {
		return fmt.Errorf("unsupported output format %q: use %s or %s", output, OutputText, OutputJSON)
	}

	job, err := loadJob(configPath)
	if err != nil {
		return err
	}

	recorder := &jobflow.Recorder{}
	translator := jobflow.New(recorder, jobflow.WithLogger(newWarningLogger()))

	in, err := translator.RunJobFlowInput(ctx, job)
	if err != nil {
		return fmt.Errorf("failed to build job flow: %w", err)
	}

	view := &planView{Request: in, Uploads: make([]planUpload, 0, len(recorder.Objects))}
	for _, obj := range recorder.Objects {
		view.Uploads = append(view.Uploads, planUpload{LocalPath: obj.LocalPath, URI: obj.URI()})
	}

	if output == OutputJSON {
		b, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Print(renderPlan(view))
	return nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
