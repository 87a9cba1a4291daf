package types

import (
	"encoding/json"
	"fmt"
)

// EventBase carries the fields shared by every live event. The server
// flattens these into the top level of the JSON object.
type EventBase struct {
	GuildID       string    `json:"guildId"`
	UserName      string    `json:"userName"`
	UserAvatarURL string    `json:"userAvatarUrl"`
	Timestamp     Timestamp `json:"timestamp"`
}

// Event is the tagged union of live notifications arriving on a guild's
// event stream. Switch over the concrete types for exhaustive handling.
type Event interface {
	Base() EventBase
	isEvent()
}

// PlaybackStarted signals that a user started playing a sound.
type PlaybackStarted struct {
	EventBase
	SoundName string `json:"soundName"`
}

// PlaybackStopped signals that the current playback was stopped.
type PlaybackStopped struct {
	EventBase
}

// RecordingSaved signals that the voice buffer was snapshotted into a
// recording.
type RecordingSaved struct {
	EventBase
}

// JoinedChannel signals that the bot connected to a voice channel.
type JoinedChannel struct {
	EventBase
	ChannelName string `json:"channelName"`
}

// LeftChannel signals that the bot disconnected from its voice channel.
type LeftChannel struct {
	EventBase
}

func (e PlaybackStarted) Base() EventBase { return e.EventBase }
func (e PlaybackStopped) Base() EventBase { return e.EventBase }
func (e RecordingSaved) Base() EventBase  { return e.EventBase }
func (e JoinedChannel) Base() EventBase   { return e.EventBase }
func (e LeftChannel) Base() EventBase     { return e.EventBase }

func (PlaybackStarted) isEvent() {}
func (PlaybackStopped) isEvent() {}
func (RecordingSaved) isEvent()  {}
func (JoinedChannel) isEvent()   {}
func (LeftChannel) isEvent()     {}

// ParseEvent decodes one event stream message into its concrete variant.
func ParseEvent(data []byte) (Event, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}

	switch tag.Type {
	case "PlaybackStarted":
		var ev PlaybackStarted
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case "PlaybackStopped":
		var ev PlaybackStopped
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case "RecordingSaved":
		var ev RecordingSaved
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case "JoinedChannel":
		var ev JoinedChannel
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case "LeftChannel":
		var ev LeftChannel
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("event: unknown type %q", tag.Type)
	}
}

// DescribeEvent renders the human-readable description of an event, matching
// the wording shown in the event log.
func DescribeEvent(ev Event) string {
	switch e := ev.(type) {
	case PlaybackStarted:
		return fmt.Sprintf("played the sound '%s'", e.SoundName)
	case PlaybackStopped:
		return "stopped the playback"
	case RecordingSaved:
		return "saved a recording"
	case JoinedChannel:
		return fmt.Sprintf("connected the soundboard to channel '%s'", e.ChannelName)
	case LeftChannel:
		return "disconnected the soundboard"
	default:
		return "did something"
	}
}
