package ports

// ThroneMetrics counts attempt outcomes for the ops endpoint.
type ThroneMetrics interface {
	RecordChallenge(outcome string)
	RecordSiege(outcome string)
	RecordRejected(reason string)
}
