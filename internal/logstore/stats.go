package logstore

// CallStatistics is the summary the UI shows next to the call log.
// Durations are stored in milliseconds; AverageDuration is reported in
// seconds over calls that actually connected (positive duration).
type CallStatistics struct {
	Total           int   `json:"total"`
	Inbound         int   `json:"inbound"`
	Outbound        int   `json:"outbound"`
	Completed       int   `json:"completed"`
	Failed          int   `json:"failed"`
	Missed          int   `json:"missed"`
	TotalDuration   int64 `json:"totalDuration"`
	AverageDuration int64 `json:"averageDuration"`
}

type MessageStatistics struct {
	Total     int `json:"total"`
	Inbound   int `json:"inbound"`
	Outbound  int `json:"outbound"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

func ComputeCallStatistics(entries []Entry) CallStatistics {
	var stats CallStatistics
	stats.Total = len(entries)

	connected := 0
	for _, e := range entries {
		switch e.Direction {
		case string(DirectionInbound):
			stats.Inbound++
		case string(DirectionOutbound):
			stats.Outbound++
		}
		switch e.Status {
		case "completed":
			stats.Completed++
		case "failed":
			stats.Failed++
		case "no-answer":
			stats.Missed++
		}
		if e.Duration > 0 {
			connected++
		}
		stats.TotalDuration += e.Duration
	}

	if connected > 0 {
		stats.AverageDuration = stats.TotalDuration / int64(connected) / 1000
	}
	return stats
}

func ComputeMessageStatistics(entries []Entry) MessageStatistics {
	var stats MessageStatistics
	stats.Total = len(entries)

	for _, e := range entries {
		switch e.Direction {
		case string(DirectionInbound):
			stats.Inbound++
		case string(DirectionOutbound):
			stats.Outbound++
		}
		switch e.Status {
		case "delivered":
			stats.Delivered++
		case "failed":
			stats.Failed++
		}
	}
	return stats
}
