package asimplevectors

import (
	"context"
	"encoding/json"
	"net/http"
)

// ClusterService administers the consensus cluster.
type ClusterService struct{ service }

// LeaderID identifies a leader by term and node.
type LeaderID struct {
	Term   uint64 `json:"term"`
	NodeID uint64 `json:"node_id"`
}

// LogID identifies a replicated log entry.
type LogID struct {
	LeaderID LeaderID `json:"leader_id"`
	Index    uint64   `json:"index"`
}

// Vote is the vote currently held by the node.
type Vote struct {
	LeaderID  LeaderID `json:"leader_id"`
	Committed bool     `json:"committed"`
}

// Node holds the addresses of one cluster member.
type Node struct {
	APIAddr string `json:"api_addr"`
	RPCAddr string `json:"rpc_addr"`
}

// Membership lists the voter sets and all known nodes.
type Membership struct {
	Configs [][]uint64      `json:"configs"`
	Nodes   map[uint64]Node `json:"nodes"`
}

// MembershipConfig is the membership together with the log entry that
// introduced it.
type MembershipConfig struct {
	LogID      *LogID     `json:"log_id"`
	Membership Membership `json:"membership"`
}

// ClusterMetrics is a point-in-time read of the consensus state.
type ClusterMetrics struct {
	ID                   uint64            `json:"id"`
	State                string            `json:"state"`
	CurrentTerm          uint64            `json:"current_term"`
	CurrentLeader        *uint64           `json:"current_leader"`
	Vote                 *Vote             `json:"vote"`
	LastLogIndex         *uint64           `json:"last_log_index"`
	LastApplied          *LogID            `json:"last_applied"`
	Snapshot             *LogID            `json:"snapshot"`
	Purged               *LogID            `json:"purged"`
	MillisSinceQuorumAck *int64            `json:"millis_since_quorum_ack"`
	LastQuorumAcked      *int64            `json:"last_quorum_acked"`
	MembershipConfig     MembershipConfig  `json:"membership_config"`
	Heartbeat            map[uint64]*int64 `json:"heartbeat"`
	Replication          map[uint64]*LogID `json:"replication"`
	RunningState         json.RawMessage   `json:"running_state"`
}

// Init bootstraps a single-node cluster on the target server.
func (s *ClusterService) Init(ctx context.Context) error {
	_, _, err := s.transport().send(ctx, "cluster_init", http.MethodPost, "/cluster/init", nil, struct{}{})
	return err
}

// AddLearner adds a non-voting node.
func (s *ClusterService) AddLearner(ctx context.Context, nodeID uint64, apiAddr, rpcAddr string) error {
	if apiAddr == "" || rpcAddr == "" {
		return invalidArgument("learner %d needs both api and rpc address", nodeID)
	}
	payload := []interface{}{nodeID, apiAddr, rpcAddr}
	_, _, err := s.transport().send(ctx, "cluster_add_learner", http.MethodPost, "/cluster/add-learner", nil, payload)
	return err
}

// ChangeMembership sets the voting members to nodeIDs.
func (s *ClusterService) ChangeMembership(ctx context.Context, nodeIDs []uint64) error {
	if len(nodeIDs) == 0 {
		return invalidArgument("membership must contain at least one node")
	}
	_, _, err := s.transport().send(ctx, "cluster_change_membership", http.MethodPost, "/cluster/change-membership", nil, nodeIDs)
	return err
}

// Metrics returns the node's consensus metrics with the result envelope
// removed.
//
// Returns an error matching ErrEnvelope when the server answers with its
// error variant instead of the metrics.
//
// Example:
//
//	m, err := client.Cluster.Metrics(ctx)
//	if err != nil {
//	    return err
//	}
//	log.Info("cluster state", nil, map[string]interface{}{"leader": m.CurrentLeader})
func (s *ClusterService) Metrics(ctx context.Context) (*ClusterMetrics, error) {
	_, body, err := s.transport().send(ctx, "cluster_metrics", http.MethodGet, "/cluster/metrics", nil, nil)
	if err != nil {
		return nil, err
	}
	raw, err := unwrapResult(body, resultOkKey)
	if err != nil {
		return nil, err
	}
	var metrics ClusterMetrics
	if err := decodeInto(raw, &metrics, "Ok", "cluster metrics"); err != nil {
		return nil, err
	}
	return &metrics, nil
}
