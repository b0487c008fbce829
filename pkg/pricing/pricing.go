package pricing

import "fmt"

// Operation keys used by the credit gate. Every costed endpoint charges
// through one of these; prices are credits, not currency.
const (
	OpImageGenerate     = "image.generate"
	OpImageRemix        = "image.remix"
	OpVideoGenerate     = "video.generate"
	OpVideoDubAndSync   = "video.dub_and_sync"
	OpAudioTranscribe   = "audio.whisper.transcribe"
	OpAudioTTS          = "audio.tts"
	OpAudioVoiceChanger = "audio.voice_changer"
	OpVoiceClone        = "voice.clone"
	OpScriptGenerate    = "script.generate"
)

var defaultPrices = map[string]int{
	OpImageGenerate:     5,
	OpImageRemix:        5,
	OpVideoGenerate:     25,
	OpVideoDubAndSync:   40,
	OpAudioTranscribe:   2,
	OpAudioTTS:          3,
	OpAudioVoiceChanger: 3,
	OpVoiceClone:        10,
	OpScriptGenerate:    1,
}

// Table resolves operation keys to credit prices. Overrides come from
// config so individual prices can be tuned without a deploy of defaults.
type Table struct {
	prices map[string]int
}

func NewTable(overrides map[string]int) *Table {
	prices := make(map[string]int, len(defaultPrices))
	for k, v := range defaultPrices {
		prices[k] = v
	}
	for k, v := range overrides {
		if v > 0 {
			prices[k] = v
		}
	}
	return &Table{prices: prices}
}

func (t *Table) Price(opKey string) (int, error) {
	price, ok := t.prices[opKey]
	if !ok {
		return 0, fmt.Errorf("unknown operation key: %s", opKey)
	}
	return price, nil
}
