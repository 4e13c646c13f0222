package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/emr/types"

	"github.com/imamik/emrer/internal/platform/awsconf"
	"github.com/imamik/emrer/internal/platform/emr"
)

// ListOptions holds the raw list flags.
type ListOptions struct {
	State         string
	States        []string
	CreatedAfter  string
	CreatedBefore string
	Tags          []string
	TagsAll       []string
}

// List prints the IDs of clusters matching the given filters, one per line.
func List(ctx context.Context, lo ListOptions, opts awsconf.Options) error {
	filter, err := lo.filter()
	if err != nil {
		return err
	}

	cfg, err := loadAWSConfig(ctx, opts.FromEnv())
	if err != nil {
		return err
	}

	ids, err := newClusterClient(cfg).ListClusterIDs(ctx, filter)
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func (lo ListOptions) filter() (emr.Filter, error) {
	f := emr.Filter{State: strings.ToLower(lo.State)}

	for _, s := range lo.States {
		f.States = append(f.States, types.ClusterState(strings.ToUpper(s)))
	}

	var err error
	if f.CreatedAfter, err = parseTime("created-after", lo.CreatedAfter); err != nil {
		return emr.Filter{}, err
	}
	if f.CreatedBefore, err = parseTime("created-before", lo.CreatedBefore); err != nil {
		return emr.Filter{}, err
	}

	if f.TagsAny, err = parseTags(lo.Tags); err != nil {
		return emr.Filter{}, err
	}
	if f.TagsAll, err = parseTags(lo.TagsAll); err != nil {
		return emr.Filter{}, err
	}

	// Surface a bad --state before any AWS call.
	if _, err := f.ClusterStates(); err != nil {
		return emr.Filter{}, err
	}
	return f, nil
}

func parseTime(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected RFC3339, e.g. 2016-01-02T15:04:05Z", flag, value)
	}
	return t, nil
}

// parseTags turns key=value strings into a map. Nil input gives nil.
func parseTags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid tag %q: expected key=value", pair)
		}
		tags[key] = value
	}
	return tags, nil
}
