package exporter

import (
	"net/http"

	"kube-binpack/internal/report"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter publishes per-node utilization gauges.
type PrometheusExporter struct {
	registry          *prometheus.Registry
	cpuRequested      *prometheus.GaugeVec
	cpuAllocatable    *prometheus.GaugeVec
	cpuPercent        *prometheus.GaugeVec
	memoryRequested   *prometheus.GaugeVec
	memoryAllocatable *prometheus.GaugeVec
	memoryPercent     *prometheus.GaugeVec
	podCount          *prometheus.GaugeVec
}

// NewPrometheusExporter initializes metric collectors.
func NewPrometheusExporter() *PrometheusExporter {
	reg := prometheus.NewRegistry()

	cpuRequested := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "binpack_node_cpu_requested_cores",
		Help: "CPU cores requested by pods scheduled on the node",
	}, []string{"node"})

	cpuAllocatable := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "binpack_node_cpu_allocatable_cores",
		Help: "Allocatable CPU cores on the node",
	}, []string{"node"})

	cpuPercent := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "binpack_node_cpu_utilization_percent",
		Help: "Requested CPU as a percentage of allocatable",
	}, []string{"node"})

	memoryRequested := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "binpack_node_memory_requested_bytes",
		Help: "Memory bytes requested by pods scheduled on the node",
	}, []string{"node"})

	memoryAllocatable := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "binpack_node_memory_allocatable_bytes",
		Help: "Allocatable memory bytes on the node",
	}, []string{"node"})

	memoryPercent := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "binpack_node_memory_utilization_percent",
		Help: "Requested memory as a percentage of allocatable",
	}, []string{"node"})

	podCount := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "binpack_node_pods",
		Help: "Pods counted toward the node's requested resources",
	}, []string{"node"})

	reg.MustRegister(cpuRequested, cpuAllocatable, cpuPercent, memoryRequested, memoryAllocatable, memoryPercent, podCount)

	return &PrometheusExporter{
		registry:          reg,
		cpuRequested:      cpuRequested,
		cpuAllocatable:    cpuAllocatable,
		cpuPercent:        cpuPercent,
		memoryRequested:   memoryRequested,
		memoryAllocatable: memoryAllocatable,
		memoryPercent:     memoryPercent,
		podCount:          podCount,
	}
}

// Handler returns the HTTP handler for /metrics.
func (p *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Update copies per-node report rows into the gauges.
func (p *PrometheusExporter) Update(rep report.BinpackingReport) {
	p.cpuRequested.Reset()
	p.cpuAllocatable.Reset()
	p.cpuPercent.Reset()
	p.memoryRequested.Reset()
	p.memoryAllocatable.Reset()
	p.memoryPercent.Reset()
	p.podCount.Reset()

	for _, row := range rep.Nodes {
		p.cpuRequested.WithLabelValues(row.Node).Set(row.CPURequested)
		p.cpuAllocatable.WithLabelValues(row.Node).Set(row.CPUAllocatable)
		p.cpuPercent.WithLabelValues(row.Node).Set(row.CPUPercent)
		p.memoryRequested.WithLabelValues(row.Node).Set(row.MemoryRequestedBytes)
		p.memoryAllocatable.WithLabelValues(row.Node).Set(row.MemoryAllocatableBytes)
		p.memoryPercent.WithLabelValues(row.Node).Set(row.MemoryPercent)
		p.podCount.WithLabelValues(row.Node).Set(float64(row.Pods))
	}
}
