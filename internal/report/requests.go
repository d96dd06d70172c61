package report

// ResourceMi pairs CPU cores with memory in mebibytes for display.
type ResourceMi struct {
	CPU      float64 `json:"cpu"`
	MemoryMi float64 `json:"memory_mi"`
}

// PodRequests is one pod entry of the aggregate requests report.
type PodRequests struct {
	Name      string     `json:"name"`
	Namespace string     `json:"namespace"`
	Requests  ResourceMi `json:"requests"`
	Limits    ResourceMi `json:"limits"`
}

// RequestTotals are cluster-wide request and limit sums.
type RequestTotals struct {
	Requests ResourceMi `json:"requests"`
	Limits   ResourceMi `json:"limits"`
}

// RequestsReport is the aggregate requests/limits form without a per-node
// breakdown.
type RequestsReport struct {
	Totals RequestTotals `json:"totals"`
	Pods   []PodRequests `json:"pods"`
}

// BuildRequests renders the aggregate form. Memory switches from bytes to
// mebibytes here, at the display boundary; the aggregation itself stays in
// bytes. Pods keep snapshot order.
func BuildRequests(agg Aggregation) RequestsReport {
	pods := make([]PodRequests, 0, len(agg.Pods))
	for _, pod := range agg.Pods {
		pods = append(pods, PodRequests{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			Requests:  toMi(pod.Requests),
			Limits:    toMi(pod.Limits),
		})
	}
	return RequestsReport{
		Totals: RequestTotals{
			Requests: toMi(agg.Totals.Requests),
			Limits:   toMi(agg.Totals.Limits),
		},
		Pods: pods,
	}
}

func toMi(t ResourceTotals) ResourceMi {
	return ResourceMi{
		CPU:      round(t.CPUCores, 3),
		MemoryMi: round(t.MemoryBytes/(1<<20), 1),
	}
}
