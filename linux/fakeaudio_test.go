package linux

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/linux/internal/commands"
)

var errExit = errors.New("exit status 1")

type fakeCard struct {
	name     string
	profiles []string
	active   string

	// rejects lists advertised profiles that still fail to be set.
	rejects map[string]bool
}

type fakeNode struct {
	name  string
	state string
}

// fakeAudio models pactl, wpctl, bluetoothctl and pw-loopback.
type fakeAudio struct {
	mu sync.Mutex

	cards   []*fakeCard
	sources []*fakeNode
	sinks   []*fakeNode

	// createNodes makes a headset profile switch register the voice nodes.
	createNodes bool
	// runBridges makes the voice nodes leave SUSPENDED once both bridges run.
	runBridges bool
	// pactlDown makes every pactl query fail.
	pactlDown bool
	// listCardsDown makes only the verbose card listing fail.
	listCardsDown bool
	// wpctlDown makes every wpctl call fail.
	wpctlDown bool

	startErr map[string]error
	procs    []*fakeProcess
	aliases  map[string]string

	calls []string
}

func newFakeAudio(cards ...*fakeCard) *fakeAudio {
	return &fakeAudio{
		cards:       cards,
		createNodes: true,
		runBridges:  true,
		startErr:    map[string]error{},
		aliases:     map[string]string{},
	}
}

func (f *fakeAudio) card(name string) *fakeCard {
	for _, c := range f.cards {
		if c.name == name {
			return c
		}
	}

	return nil
}

func (f *fakeAudio) record(cmd *commands.Command) {
	f.calls = append(f.calls, cmd.String())
}

// callsSince returns the calls recorded after the first n.
func (f *fakeAudio) callsSince(n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls[n:]...)
}

func (f *fakeAudio) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// indexOf returns the index of the first call with the given prefix at or after from, or -1.
func (f *fakeAudio) indexOf(prefix string, from int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := from; i < len(f.calls); i++ {
		if strings.HasPrefix(f.calls[i], prefix) {
			return i
		}
	}

	return -1
}

func (f *fakeAudio) lastIndexOf(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.calls) - 1; i >= 0; i-- {
		if strings.HasPrefix(f.calls[i], prefix) {
			return i
		}
	}

	return -1
}

func (f *fakeAudio) activeProfile(card string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c := f.card(card); c != nil {
		return c.active
	}

	return ""
}

func (f *fakeAudio) Output(_ context.Context, cmd *commands.Command) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(cmd)

	args := strings.Join(cmd.Args(), " ")

	switch cmd.Tool() {
	case "pactl":
		if f.pactlDown {
			return nil, errExit
		}

		switch args {
		case "list cards short":
			return f.cardsShort(), nil
		case "list cards":
			if f.listCardsDown {
				return nil, errExit
			}
			return f.cardsVerbose(), nil
		case "list sources short":
			return nodesShort(f.sources), nil
		case "list sinks short":
			return nodesShort(f.sinks), nil
		}

	case "bluetoothctl":
		addr := cmd.Args()[len(cmd.Args())-1]
		alias, ok := f.aliases[addr]
		if !ok {
			return []byte("Device " + addr + " not available\n"), errExit
		}
		return []byte(fmt.Sprintf("Device %s (public)\n\tName: %s\n\tAlias: %s\n\tPaired: yes\n", addr, alias, alias)), nil
	}

	return nil, fmt.Errorf("unexpected command %q", cmd.String())
}

func (f *fakeAudio) Run(_ context.Context, cmd *commands.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(cmd)

	args := cmd.Args()

	switch cmd.Tool() {
	case "wpctl":
		if f.wpctlDown {
			return errExit
		}
		return nil

	case "pactl":
		if f.pactlDown || len(args) != 3 || args[0] != "set-card-profile" {
			return errExit
		}

		c := f.card(args[1])
		profile := args[2]
		if c == nil || !contains(c.profiles, profile) || c.rejects[profile] {
			return errExit
		}

		c.active = profile
		f.updateNodes(c)

		return nil
	}

	return fmt.Errorf("unexpected command %q", cmd.String())
}

func (f *fakeAudio) Start(cmd *commands.Command) (commands.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(cmd)

	name, _ := cmd.Arg(commands.NameArgument)
	if err := f.startErr[name]; err != nil {
		return nil, err
	}

	p := &fakeProcess{name: name, pid: 1000 + len(f.procs)}
	f.procs = append(f.procs, p)

	if f.runBridges && f.runningProcs() == 2 {
		for _, n := range append(f.sources, f.sinks...) {
			n.state = "RUNNING"
		}
	}

	return p, nil
}

func (f *fakeAudio) runningProcs() int {
	n := 0
	for _, p := range f.procs {
		if !p.isKilled() {
			n++
		}
	}

	return n
}

func (f *fakeAudio) process(name string) *fakeProcess {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.procs {
		if p.name == name {
			return p
		}
	}

	return nil
}

func (f *fakeAudio) updateNodes(c *fakeCard) {
	source, sink := callaudio.SourceNodeName(c.name), callaudio.SinkNodeName(c.name)
	f.sources = removeNode(f.sources, source)
	f.sinks = removeNode(f.sinks, sink)

	if f.createNodes && strings.HasPrefix(c.active, profileHeadset) {
		f.sources = append(f.sources, &fakeNode{name: source, state: "SUSPENDED"})
		f.sinks = append(f.sinks, &fakeNode{name: sink, state: "SUSPENDED"})
	}
}

func removeNode(nodes []*fakeNode, name string) []*fakeNode {
	kept := nodes[:0]
	for _, n := range nodes {
		if n.name != name {
			kept = append(kept, n)
		}
	}

	return kept
}

func (f *fakeAudio) cardsShort() []byte {
	var sb strings.Builder
	sb.WriteString("47\talsa_card.pci-0000_00_1f.3\tmodule-alsa-card.c\n")
	for i, c := range f.cards {
		fmt.Fprintf(&sb, "%d\t%s\tmodule-bluez5-device.c\n", 100+i, c.name)
	}

	return []byte(sb.String())
}

func (f *fakeAudio) cardsVerbose() []byte {
	var sb strings.Builder
	sb.WriteString("Card #47\n\tName: alsa_card.pci-0000_00_1f.3\n\tDriver: module-alsa-card.c\n")
	sb.WriteString("\tProfiles:\n\t\toutput:analog-stereo: Analog Stereo Output (sinks: 1, sources: 0, priority: 6500, available: yes)\n")
	sb.WriteString("\tActive Profile: output:analog-stereo\n\tPorts:\n\t\tanalog-output-speaker: Speakers (type: Speaker, priority: 10000)\n\n")

	for i, c := range f.cards {
		fmt.Fprintf(&sb, "Card #%d\n\tName: %s\n\tDriver: module-bluez5-device.c\n", 100+i, c.name)
		sb.WriteString("\tOwner Module: n/a\n\tProperties:\n\t\tdevice.bus = \"bluetooth\"\n")
		sb.WriteString("\tProfiles:\n")
		for _, p := range c.profiles {
			fmt.Fprintf(&sb, "\t\t%s: %s (sinks: 1, sources: 0, priority: 10, available: yes)\n", p, strings.ToUpper(p))
		}
		fmt.Fprintf(&sb, "\tActive Profile: %s\n\tPorts:\n\t\theadset-output: Headset (type: Headset, priority: 0)\n\n", c.active)
	}

	return []byte(sb.String())
}

func nodesShort(nodes []*fakeNode) []byte {
	var sb strings.Builder
	for i, n := range nodes {
		fmt.Fprintf(&sb, "%d\t%s\tPipeWire\ts16le 1ch 16000Hz\t%s\n", 60+i, n.name, n.state)
	}

	return []byte(sb.String())
}

type fakeProcess struct {
	name string
	pid  int

	mu     sync.Mutex
	killed bool
	waited bool
}

func (p *fakeProcess) Pid() int {
	return p.pid
}

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.killed {
		return errors.New("os: process already finished")
	}
	p.killed = true

	return nil
}

func (p *fakeProcess) Wait() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.waited {
		return errors.New("exec: Wait was already called")
	}
	p.waited = true

	return errors.New("signal: killed")
}

func (p *fakeProcess) isKilled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.killed
}

func (p *fakeProcess) reaped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.killed && p.waited
}

type staticAliases map[string]string

func (s staticAliases) Alias(_ context.Context, address string) string {
	return s[address]
}
