package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError contains details about fixture validation failures
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the fixture for errors
func Validate(cfg *Config, availableProfiles []string) error {
	var errors ValidationErrors

	// Validate ports
	if len(cfg.Ports) == 0 {
		errors = append(errors, ValidationError{
			Field:   "ports",
			Message: "at least one port must be configured",
		})
	}

	devicesSeen := make(map[string]bool)
	for i, port := range cfg.Ports {
		portErrors := validatePort(port, i, availableProfiles, devicesSeen)
		errors = append(errors, portErrors...)
	}

	// Validate logging
	if cfg.Logging.BasePath != "" {
		if info, err := os.Stat(cfg.Logging.BasePath); err != nil || !info.IsDir() {
			errors = append(errors, ValidationError{
				Field:   "logging.base_path",
				Message: fmt.Sprintf("directory does not exist: %s", cfg.Logging.BasePath),
			})
		}
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func validatePort(port PortConfig, index int, availableProfiles []string, devicesSeen map[string]bool) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("ports[%d]", index)

	// Check device
	if port.Device == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".device",
			Message: "device name is required",
		})
	} else if devicesSeen[port.Device] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".device",
			Message: fmt.Sprintf("duplicate device: %s", port.Device),
		})
	} else {
		devicesSeen[port.Device] = true
	}

	// Check baud rate
	validBaudRates := []int{300, 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}
	if !contains(validBaudRates, port.BaudRate) {
		errors = append(errors, ValidationError{
			Field:   prefix + ".baud_rate",
			Message: fmt.Sprintf("invalid baud rate: %d", port.BaudRate),
		})
	}

	// Check timeout
	if port.TimeoutSec < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".timeout_sec",
			Message: "must not be negative",
		})
	}

	// Check profile
	if port.Profile != "" && !containsString(availableProfiles, strings.ToLower(port.Profile)) {
		errors = append(errors, ValidationError{
			Field:   prefix + ".profile",
			Message: fmt.Sprintf("unknown profile: %s (available: %s)", port.Profile, strings.Join(availableProfiles, ", ")),
		})
	}

	// A port without a profile needs inline responses to be useful
	if port.Profile == "" && len(port.Responses) == 0 {
		errors = append(errors, ValidationError{
			Field:   prefix,
			Message: "either profile or responses must be set",
		})
	}

	// Check response entries
	matchesSeen := make(map[string]bool)
	for j, resp := range port.Responses {
		respErrors := validateResponse(resp, prefix, j, matchesSeen)
		errors = append(errors, respErrors...)
	}

	return errors
}

func validateResponse(resp ResponseConfig, prefix string, index int, matchesSeen map[string]bool) ValidationErrors {
	var errors ValidationErrors
	rprefix := fmt.Sprintf("%s.responses[%d]", prefix, index)

	// Exactly one match form
	if resp.Match == "" && resp.MatchHex == "" {
		errors = append(errors, ValidationError{
			Field:   rprefix,
			Message: "either match or match_hex is required",
		})
	}
	if resp.Match != "" && resp.MatchHex != "" {
		errors = append(errors, ValidationError{
			Field:   rprefix,
			Message: "match and match_hex are mutually exclusive",
		})
	}

	// At most one reply form
	replyForms := 0
	if resp.Reply != "" {
		replyForms++
	}
	if resp.ReplyHex != "" {
		replyForms++
	}
	if resp.Echo {
		replyForms++
	}
	if replyForms > 1 {
		errors = append(errors, ValidationError{
			Field:   rprefix,
			Message: "reply, reply_hex and echo are mutually exclusive",
		})
	}

	// Hex forms must decode
	key, err := resp.MatchKey()
	if err != nil {
		errors = append(errors, ValidationError{
			Field:   rprefix + ".match_hex",
			Message: err.Error(),
		})
	} else if len(key) > 0 {
		if matchesSeen[string(key)] {
			errors = append(errors, ValidationError{
				Field:   rprefix,
				Message: fmt.Sprintf("duplicate match: % X", key),
			})
		} else {
			matchesSeen[string(key)] = true
		}
	}
	if _, err := resp.ReplyBytes(); err != nil {
		errors = append(errors, ValidationError{
			Field:   rprefix + ".reply_hex",
			Message: err.Error(),
		})
	}

	return errors
}

func contains(slice []int, val int) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

func containsString(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}
