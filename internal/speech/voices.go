package speech

import (
	"fmt"
	"strings"
)

// Voices lists the prebuilt voices the speech model accepts
var Voices = []string{
	"Zephyr", "Puck", "Charon", "Kore", "Fenrir", "Leda", "Orus", "Aoede",
	"Callirrhoe", "Autonoe", "Enceladus", "Iapetus", "Umbriel", "Algieba",
	"Despina", "Erinome", "Algenib", "Rasalgethi", "Laomedeia", "Achernar",
	"Alnilam", "Schedar", "Gacrux", "Pulcherrima", "Achird", "Zubenelgenubi",
	"Vindemiatrix", "Sadachbia", "Sadaltager", "Sulafat",
}

// ResolveVoice returns the canonical voice name, or fallback when voice is empty
func ResolveVoice(voice, fallback string) (string, error) {
	voice = strings.TrimSpace(voice)
	if voice == "" {
		voice = fallback
	}
	for _, v := range Voices {
		if strings.EqualFold(v, voice) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVoice, voice)
}
