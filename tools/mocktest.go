package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"dummyserial/profile"
	"dummyserial/serial"

	_ "dummyserial/profile/meter"
	_ "dummyserial/profile/modem"
)

func main() {
	mode := flag.String("mode", "table", "Mode: table, drain, or timeout")
	profileName := flag.String("profile", "modem", "Device profile to exercise")
	chunk := flag.Int("chunk", 4, "Read chunk size for drain mode")
	timeout := flag.Duration("timeout", 500*time.Millisecond, "Read timeout for the mock port")
	flag.Parse()

	p, err := profile.Get(*profileName)
	if err != nil {
		log.Fatalf("Unknown profile: %v", err)
	}

	port := serial.New(serial.Config{
		Device:    "/dev/ttyMOCK0",
		Responses: p.Responses(),
		Timeout:   *timeout,
	})
	defer port.Close()

	fmt.Printf("Mock port %s with profile %q (%s)\n\n", port.Device(), p.Name(), p.Description())

	switch *mode {
	case "table":
		tableTest(port, p)
	case "drain":
		drainTest(port, p, *chunk)
	case "timeout":
		timeoutTest(port, *timeout)
	default:
		log.Fatal("Invalid mode. Use: table, drain, or timeout")
	}
}

// tableTest writes every payload the profile knows and prints the
// staged response
func tableTest(port *serial.MockPort, p profile.Profile) {
	for _, payload := range sortedPayloads(p) {
		if _, err := port.WriteString(payload); err != nil {
			log.Fatalf("Write error: %v", err)
		}
		data, err := port.ReadN(port.InWaiting())
		if err != nil {
			log.Fatalf("Read error: %v", err)
		}
		fmt.Printf("  %-14q -> %q\n", payload, data)
	}
}

// drainTest reads one response in fixed-size chunks to show partial
// draining
func drainTest(port *serial.MockPort, p profile.Profile, chunk int) {
	payloads := sortedPayloads(p)
	payload := payloads[0]

	if _, err := port.WriteString(payload); err != nil {
		log.Fatalf("Write error: %v", err)
	}
	fmt.Printf("Wrote %q, %d bytes pending\n", payload, port.InWaiting())

	for port.InWaiting() > 0 {
		size := chunk
		if pending := port.InWaiting(); pending < size {
			size = pending
		}
		data, err := port.ReadN(size)
		if err != nil {
			log.Fatalf("Read error: %v", err)
		}
		fmt.Printf("  read(%d) -> %q (%d left)\n", size, data, port.InWaiting())
	}
	fmt.Println("Drained")
}

// timeoutTest shows the under-supply wait on a port with nothing
// useful pending
func timeoutTest(port *serial.MockPort, timeout time.Duration) {
	fmt.Printf("Reading 64 bytes from an idle port (timeout %v)...\n", timeout)

	start := time.Now()
	data, err := port.ReadN(64)
	if err != nil {
		log.Fatalf("Read error: %v", err)
	}
	fmt.Printf("  returned %d bytes after %v\n", len(data), time.Since(start).Round(time.Millisecond))
}

func sortedPayloads(p profile.Profile) []string {
	payloads := make([]string, 0)
	for payload := range p.Responses() {
		payloads = append(payloads, payload)
	}
	sort.Strings(payloads)
	return payloads
}
