package linux

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/phoneconnect/dial/api/callaudio"
)

// cardInfo holds the fields parsed from one card block of `pactl list cards`.
type cardInfo struct {
	name          string
	profiles      []string
	activeProfile string
}

// parseCardsShort returns the Bluetooth card names listed by `pactl list cards short`.
func parseCardsShort(out []byte) []string {
	var names []string

	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		cols := strings.SplitN(scanner.Text(), "\t", 3)
		if len(cols) < 2 {
			continue
		}
		if _, err := strconv.ParseUint(strings.TrimSpace(cols[0]), 10, 32); err != nil {
			continue
		}

		name := strings.TrimSpace(cols[1])
		if strings.HasPrefix(name, callaudio.CardPrefix) {
			names = append(names, name)
		}
	}

	return names
}

// parseCards parses the verbose `pactl list cards` output.
func parseCards(out []byte) []cardInfo {
	var (
		cards      []cardInfo
		current    *cardInfo
		inProfiles bool
	)

	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if rest, ok := strings.CutPrefix(line, "Name:"); ok {
			cards = append(cards, cardInfo{name: strings.TrimSpace(rest)})
			current = &cards[len(cards)-1]
			inProfiles = false
			continue
		}
		if current == nil {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "Active Profile:"); ok {
			current.activeProfile = strings.TrimSpace(rest)
			inProfiles = false
			continue
		}

		if line == "Profiles:" {
			inProfiles = true
			continue
		}

		if inProfiles {
			name, _, found := strings.Cut(line, ":")
			name = strings.TrimSpace(name)
			if !found || name == "" {
				inProfiles = false
				continue
			}
			current.profiles = append(current.profiles, name)
		}
	}

	return cards
}

// findCard returns the parsed block of the named card.
func findCard(cards []cardInfo, name string) (cardInfo, bool) {
	for _, c := range cards {
		if c.name == name {
			return c, true
		}
	}

	return cardInfo{}, false
}

// nodeLines returns the lines of a `pactl list sources|sinks short` output
// that mention the node name.
func nodeLines(out []byte, node string) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, node) {
			lines = append(lines, line)
		}
	}

	return lines
}

// anyNotSuspended reports whether any of the lines is in a state other than SUSPENDED.
func anyNotSuspended(lines []string) bool {
	for _, line := range lines {
		if !strings.Contains(line, "SUSPENDED") {
			return true
		}
	}

	return false
}
