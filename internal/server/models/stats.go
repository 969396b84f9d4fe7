package models

// TypeStat is one row of the per-type aggregate: file_type with its count
// and total byte size for an account.
type TypeStat struct {
	FileType   string
	Count      int64
	TotalBytes int64
}

// ChartBucket is one slice of the usage chart, value in megabytes.
type ChartBucket struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// UsageStats is the derived per-account view shown as a quota meter. It is
// never stored; it is recomputed from FileRecords on demand.
type UsageStats struct {
	TotalUsedMB float64       `json:"total_used_mb"`
	FileCount   int64         `json:"file_count"`
	ChartData   []ChartBucket `json:"chart_data"`
}
