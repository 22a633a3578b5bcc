package models

import "strings"

type TagKind string

const (
	TagMood           TagKind = "mood"
	TagSymptom        TagKind = "symptom"
	TagDischarge      TagKind = "discharge"
	TagSexualActivity TagKind = "sexual_activity"
)

type Tag struct {
	Kind  TagKind `json:"kind"`
	Name  string  `json:"name"`
	Icon  string  `json:"icon"`
	Color string  `json:"color"`
}

func DefaultTagCatalog() []Tag {
	return []Tag{
		{Kind: TagMood, Name: "calm", Icon: "😌", Color: "#7CB342"},
		{Kind: TagMood, Name: "happy", Icon: "😊", Color: "#FFB300"},
		{Kind: TagMood, Name: "energetic", Icon: "⚡", Color: "#FFA000"},
		{Kind: TagMood, Name: "sad", Icon: "😢", Color: "#5C6BC0"},
		{Kind: TagMood, Name: "anxious", Icon: "😰", Color: "#9B59B6"},
		{Kind: TagMood, Name: "irritable", Icon: "😤", Color: "#FF7043"},
		{Kind: TagMood, Name: "mood swings", Icon: "🎢", Color: "#E91E63"},
		{Kind: TagSymptom, Name: "cramps", Icon: "🩸", Color: "#FF4444"},
		{Kind: TagSymptom, Name: "headache", Icon: "🤕", Color: "#FFA500"},
		{Kind: TagSymptom, Name: "bloating", Icon: "🎈", Color: "#3498DB"},
		{Kind: TagSymptom, Name: "fatigue", Icon: "😴", Color: "#95A5A6"},
		{Kind: TagSymptom, Name: "breast tenderness", Icon: "💔", Color: "#E91E63"},
		{Kind: TagSymptom, Name: "acne", Icon: "🔴", Color: "#E74C3C"},
		{Kind: TagSymptom, Name: "back pain", Icon: "🦴", Color: "#8E6E53"},
		{Kind: TagSymptom, Name: "nausea", Icon: "🤢", Color: "#7CB342"},
		{Kind: TagSymptom, Name: "insomnia", Icon: "🌙", Color: "#5C6BC0"},
		{Kind: TagSymptom, Name: "food cravings", Icon: "🍫", Color: "#A1887F"},
		{Kind: TagSymptom, Name: "diarrhea", Icon: "🚽", Color: "#26A69A"},
		{Kind: TagSymptom, Name: "constipation", Icon: "🪨", Color: "#8D6E63"},
		{Kind: TagDischarge, Name: "dry", Icon: "🏜️", Color: "#BCAAA4"},
		{Kind: TagDischarge, Name: "sticky", Icon: "🧴", Color: "#D7CCC8"},
		{Kind: TagDischarge, Name: "creamy", Icon: "🥛", Color: "#FFF3E0"},
		{Kind: TagDischarge, Name: "egg white", Icon: "🥚", Color: "#FFFDE7"},
		{Kind: TagDischarge, Name: "watery", Icon: "💧", Color: "#B3E5FC"},
		{Kind: TagSexualActivity, Name: "protected", Icon: "🛡️", Color: "#26A69A"},
		{Kind: TagSexualActivity, Name: "unprotected", Icon: "❤️", Color: "#E53935"},
		{Kind: TagSexualActivity, Name: "solo", Icon: "✨", Color: "#AB47BC"},
	}
}

// TagNames returns the normalized names of one kind.
func TagNames(kind TagKind) map[string]bool {
	names := make(map[string]bool)
	for _, tag := range DefaultTagCatalog() {
		if tag.Kind == kind {
			names[NormalizeTag(tag.Name)] = true
		}
	}
	return names
}

func NormalizeTag(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
