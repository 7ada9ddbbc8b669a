package serial

import "time"

// Stats tracks traffic through a port
type Stats struct {
	BytesWritten int64
	BytesRead    int64
	Writes       int64
	Reads        int64
	Errors       int64
	LastActivity time.Time
	CreatedAt    time.Time
}

// PortWithStats wraps a Port with traffic counters, letting test
// suites assert on how much the code under test talked to its device
type PortWithStats struct {
	Port
	stats Stats
}

// NewPortWithStats creates a new port wrapper with statistics
func NewPortWithStats(port Port) *PortWithStats {
	return &PortWithStats{
		Port: port,
		stats: Stats{
			CreatedAt: time.Now(),
		},
	}
}

// Write writes data to the port and tracks statistics
func (p *PortWithStats) Write(data []byte) (int, error) {
	n, err := p.Port.Write(data)
	if err != nil {
		p.stats.Errors++
		return n, err
	}
	p.stats.Writes++
	p.stats.BytesWritten += int64(n)
	p.stats.LastActivity = time.Now()
	return n, nil
}

// Read reads from the port and tracks statistics
func (p *PortWithStats) Read(buf []byte) (int, error) {
	n, err := p.Port.Read(buf)
	if err != nil {
		p.stats.Errors++
		return n, err
	}
	p.stats.Reads++
	p.stats.BytesRead += int64(n)
	p.stats.LastActivity = time.Now()
	return n, nil
}

// Stats returns a copy of the current statistics
func (p *PortWithStats) Stats() Stats {
	return p.stats
}
