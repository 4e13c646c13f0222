package emr

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
)

// State shorthands accepted by Filter.State.
const (
	StateOn  = "on"
	StateOff = "off"
)

var (
	activeStates = []types.ClusterState{
		types.ClusterStateStarting,
		types.ClusterStateBootstrapping,
		types.ClusterStateRunning,
		types.ClusterStateWaiting,
	}
	inactiveStates = []types.ClusterState{
		types.ClusterStateTerminating,
		types.ClusterStateTerminated,
		types.ClusterStateTerminatedWithErrors,
	}
)

// Filter selects clusters for ListClusterIDs.
type Filter struct {
	// State is "on", "off" or empty. Its states are added to States.
	State  string
	States []types.ClusterState

	CreatedAfter  time.Time
	CreatedBefore time.Time

	// TagsAny keeps clusters carrying at least one of these tags.
	TagsAny map[string]string
	// TagsAll keeps clusters carrying all of these tags.
	TagsAll map[string]string
}

// ClusterStates returns States plus the states named by State.
func (f Filter) ClusterStates() ([]types.ClusterState, error) {
	states := append([]types.ClusterState(nil), f.States...)
	switch f.State {
	case "":
	case StateOn:
		states = append(states, activeStates...)
	case StateOff:
		states = append(states, inactiveStates...)
	default:
		return nil, fmt.Errorf("invalid state shorthand %q: must be %q or %q", f.State, StateOn, StateOff)
	}
	return states, nil
}

// ListClusterIDs returns the IDs of the clusters matching f, in the order
// the API lists them. Tag filters cost one DescribeCluster call per cluster.
func (c *Client) ListClusterIDs(ctx context.Context, f Filter) ([]string, error) {
	states, err := f.ClusterStates()
	if err != nil {
		return nil, err
	}

	in := &emr.ListClustersInput{ClusterStates: states}
	if !f.CreatedAfter.IsZero() {
		in.CreatedAfter = aws.Time(f.CreatedAfter)
	}
	if !f.CreatedBefore.IsZero() {
		in.CreatedBefore = aws.Time(f.CreatedBefore)
	}

	var ids []string
	paginator := emr.NewListClustersPaginator(c.api, in)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list clusters: %w", describeAPIError(err))
		}
		for _, cluster := range page.Clusters {
			ids = append(ids, aws.ToString(cluster.Id))
		}
	}

	if len(f.TagsAny) == 0 && len(f.TagsAll) == 0 {
		return ids, nil
	}

	kept := ids[:0]
	for _, id := range ids {
		out, err := c.api.DescribeCluster(ctx, &emr.DescribeClusterInput{ClusterId: aws.String(id)})
		if err != nil {
			return nil, fmt.Errorf("failed to describe cluster %s: %w", id, describeAPIError(err))
		}
		var tags []types.Tag
		if out.Cluster != nil {
			tags = out.Cluster.Tags
		}
		if matchesTags(tags, f.TagsAny, f.TagsAll) {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

// matchesTags applies the any-of filter first, then the all-of filter.
// An empty filter always matches.
func matchesTags(tags []types.Tag, anyOf, allOf map[string]string) bool {
	has := make(map[string]string, len(tags))
	for _, t := range tags {
		has[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}

	if len(anyOf) > 0 {
		found := false
		for k, v := range anyOf {
			if got, ok := has[k]; ok && got == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for k, v := range allOf {
		if got, ok := has[k]; !ok || got != v {
			return false
		}
	}
	return true
}
