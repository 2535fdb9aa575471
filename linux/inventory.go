package linux

import (
	"context"

	"github.com/phoneconnect/dial/api/callaudio"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/linux/internal/commands"
)

// inventory enumerates the Bluetooth cards known to the audio server.
type inventory struct {
	runner  commands.Runner
	tools   config.Tools
	aliases AliasResolver
}

// list returns a snapshot of the Bluetooth cards. Tool failures yield an empty list.
func (i *inventory) list(ctx context.Context) []callaudio.Endpoint {
	short, err := commands.ListCardsShort(i.tools).OutputWith(ctx, i.runner)
	if err != nil {
		return nil
	}

	names := parseCardsShort(short)
	if len(names) == 0 {
		return nil
	}

	var cards []cardInfo
	if verbose, err := commands.ListCards(i.tools).OutputWith(ctx, i.runner); err == nil {
		cards = parseCards(verbose)
	}

	endpoints := make([]callaudio.Endpoint, 0, len(names))
	for _, name := range names {
		ep := callaudio.Endpoint{
			Name:    name,
			Address: callaudio.CardNameToMac(name),
		}
		if c, ok := findCard(cards, name); ok {
			ep.ActiveProfile = c.activeProfile
		}
		if i.aliases != nil {
			ep.DisplayName = i.aliases.Alias(ctx, ep.Address)
		}

		endpoints = append(endpoints, ep)
	}

	return endpoints
}
