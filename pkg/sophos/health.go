package sophos

import (
	"fmt"
	"math"
)

// ScoredCheck is one scored item of the account health check. Score is nil
// when the API omitted it; Total is the number of devices the check covers,
// where zero means the check has nothing to score.
type ScoredCheck struct {
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	Total int      `json:"total,omitempty" yaml:"total,omitempty"`
}

// scored reports whether the check carries a usable score.
func (c ScoredCheck) scored() bool {
	return c.Score != nil && c.Total > 0
}

// MachineScores splits a check by machine class.
type MachineScores struct {
	Computer ScoredCheck `json:"computer" yaml:"computer"`
	Server   ScoredCheck `json:"server"   yaml:"server"`
}

// PolicyScores holds per-policy-type checks keyed by policy type.
type PolicyScores struct {
	Computer map[string]ScoredCheck `json:"computer" yaml:"computer"`
	Server   map[string]ScoredCheck `json:"server"   yaml:"server"`
}

// ExclusionScores covers exclusion hygiene checks.
type ExclusionScores struct {
	Policy MachineScores `json:"policy" yaml:"policy"`
	Global ScoredCheck   `json:"global" yaml:"global"`
}

// TamperScores covers tamper protection checks.
type TamperScores struct {
	Computer     ScoredCheck `json:"computer"     yaml:"computer"`
	Server       ScoredCheck `json:"server"       yaml:"server"`
	GlobalDetail ScoredCheck `json:"globalDetail" yaml:"globalDetail"`
}

// EndpointHealth is the endpoint section of the health-check document.
type EndpointHealth struct {
	Protection       MachineScores   `json:"protection"       yaml:"protection"`
	Policy           PolicyScores    `json:"policy"           yaml:"policy"`
	Exclusions       ExclusionScores `json:"exclusions"       yaml:"exclusions"`
	TamperProtection TamperScores    `json:"tamperProtection" yaml:"tamperProtection"`
}

// NetworkDeviceHealth is the network device section of the health-check
// document, keyed by check type.
type NetworkDeviceHealth struct {
	Firewall map[string]ScoredCheck `json:"firewall" yaml:"firewall"`
}

// HealthCheck represents the /account-health-check/v1/health-check response.
type HealthCheck struct {
	Endpoint      EndpointHealth      `json:"endpoint"      yaml:"endpoint"`
	NetworkDevice NetworkDeviceHealth `json:"networkDevice" yaml:"networkDevice"`
}

// HealthSummary holds the per-category averages of a health check, rounded to
// one decimal. A nil score means the category had no data.
type HealthSummary struct {
	Overall          *float64
	Protection       *float64
	Policy           *float64
	Exclusions       *float64
	TamperProtection *float64
	Firewall         *float64
}

// Summarize averages the health check into one score per category.
//
// A sub-score only participates when its check covers at least one device
// (global checks participate whenever a score is present). When protection
// has no data at all the tenant has no endpoints, so policy, exclusions and
// tamper protection are reported as having no data too. The overall score is
// the mean of whichever categories have data.
func (h *HealthCheck) Summarize() HealthSummary {
	protection := mean(
		machineScores(h.Endpoint.Protection)...,
	)

	policy := mean(
		meanOfMap(h.Endpoint.Policy.Computer),
		meanOfMap(h.Endpoint.Policy.Server),
	)

	exclusions := mean(append(
		machineScores(h.Endpoint.Exclusions.Policy),
		globalScore(h.Endpoint.Exclusions.Global),
	)...)

	tamper := mean(
		scoreOf(h.Endpoint.TamperProtection.Computer),
		scoreOf(h.Endpoint.TamperProtection.Server),
		globalScore(h.Endpoint.TamperProtection.GlobalDetail),
	)

	firewall := meanOfMap(h.NetworkDevice.Firewall)

	if protection == nil {
		policy, exclusions, tamper = nil, nil, nil
	}

	overall := mean(protection, policy, exclusions, tamper, firewall)

	return HealthSummary{
		Overall:          round1(overall),
		Protection:       round1(protection),
		Policy:           round1(policy),
		Exclusions:       round1(exclusions),
		TamperProtection: round1(tamper),
		Firewall:         round1(firewall),
	}
}

// FormatScore renders a summary score, using "N/A" for absent data.
func FormatScore(score *float64) string {
	if score == nil {
		return "N/A"
	}

	return fmt.Sprintf("%.1f", *score)
}

func machineScores(m MachineScores) []*float64 {
	return []*float64{scoreOf(m.Computer), scoreOf(m.Server)}
}

func scoreOf(c ScoredCheck) *float64 {
	if !c.scored() {
		return nil
	}

	return c.Score
}

// globalScore ignores Total: global checks apply account-wide.
func globalScore(c ScoredCheck) *float64 {
	return c.Score
}

func meanOfMap(checks map[string]ScoredCheck) *float64 {
	scores := make([]*float64, 0, len(checks))
	for _, check := range checks {
		if check.Score != nil {
			scores = append(scores, check.Score)
		}
	}

	return mean(scores...)
}

func mean(scores ...*float64) *float64 {
	var (
		sum   float64
		count int
	)

	for _, s := range scores {
		if s != nil {
			sum += *s
			count++
		}
	}

	if count == 0 {
		return nil
	}

	avg := sum / float64(count)

	return &avg
}

func round1(score *float64) *float64 {
	if score == nil {
		return nil
	}

	rounded := math.Round(*score*10) / 10

	return &rounded
}
