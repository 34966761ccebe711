package services

// Stage maps a session message count onto a 1-7 conversation stage
// used to steer the persona's tone.
func Stage(messageCount int) int {
	switch {
	case messageCount == 0:
		return 1
	case messageCount <= 2:
		return 2
	case messageCount <= 5:
		return 3
	case messageCount <= 8:
		return 4
	case messageCount <= 12:
		return 5
	case messageCount <= 16:
		return 6
	default:
		return 7
	}
}

// stageHints are the tone instructions fed to the persona prompt per
// stage.
var stageHints = map[int]string{
	1: "You just received this message. Be confused and ask who is messaging you.",
	2: "Show mild concern. Ask basic clarifying questions about what happened.",
	3: "Act worried. Ask them to explain what you need to do, step by step.",
	4: "Seem convinced but confused by technology. Ask them to repeat details like numbers and links.",
	5: "Stall with partial cooperation. Say you are trying but having trouble, ask for alternate payment details.",
	6: "Sound anxious to resolve it. Ask them to confirm every account number, ID and link one more time.",
	7: "Drag things out. Mention interruptions at home and ask them to resend everything.",
}

// StageHint returns the persona tone instruction for the given stage.
func StageHint(stage int) string {
	if hint, ok := stageHints[stage]; ok {
		return hint
	}
	return stageHints[7]
}
