package commands

import "github.com/phoneconnect/dial/api/config"

// Audio server commands.
func ListCardsShort(t config.Tools) *Command {
	return newCommand(t.Pactl, "list", "cards", "short")
}
func ListCards(t config.Tools) *Command {
	return newCommand(t.Pactl, "list", "cards")
}
func SetCardProfile(t config.Tools, card, profile string) *Command {
	return newCommand(t.Pactl, "set-card-profile", card, profile)
}
func ListSourcesShort(t config.Tools) *Command {
	return newCommand(t.Pactl, "list", "sources", "short")
}
func ListSinksShort(t config.Tools) *Command {
	return newCommand(t.Pactl, "list", "sinks", "short")
}

// Policy daemon commands.
func SetAutoswitch(t config.Tools, enable bool) *Command {
	return newCommand(t.Wpctl, "settings", AutoswitchSetting, StateArgumentValue(enable))
}

// Bluetooth daemon commands.
func DeviceInfo(t config.Tools, address string) *Command {
	return newCommand(t.Bluetoothctl, "info", address)
}

// Loopback returns a named loopback bridge command. Endpoints and stream
// properties are added with WithArgument.
func Loopback(t config.Tools, name string) *Command {
	return newCommand(t.PwLoopback).WithArgument(NameArgument, name)
}
