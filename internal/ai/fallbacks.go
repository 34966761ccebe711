package ai

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"honeytrap-lab/internal/domain/models"
)

// FallbackReplies holds canned in-character responses used when the
// language model cannot produce a reply.
type FallbackReplies struct {
	mu      sync.Mutex
	rng     *rand.Rand
	byStage map[int][]string
}

// NewFallbackReplies creates the canned reply table.
func NewFallbackReplies() *FallbackReplies {
	return &FallbackReplies{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		byStage: map[int][]string{
			1: {
				"Hello? Who is this please? I don't have this number saved.",
				"Sorry, who is messaging? Is this about my pension?",
				"Namaste. I did not understand, who are you?",
			},
			2: {
				"Oh no, is something wrong with my account? Please tell me what happened.",
				"I am a bit worried now. What do I need to do?",
				"My nephew usually handles these things. Can you explain slowly?",
			},
			3: {
				"I see. Can you tell me step by step? I am not good with the phone.",
				"Which account is this about? I have two banks, please tell me the details.",
				"Should I write something down? Please send me the number again.",
			},
			4: {
				"The screen is showing something strange. Can you send the link once more?",
				"I could not read that properly, my glasses are missing. Can you repeat the number?",
				"Is there a phone number I can call? I prefer talking.",
			},
			5: {
				"I am trying but this app keeps asking something. Is there another way to pay?",
				"My card is with my son today. Do you have a UPI I can use instead?",
				"It says error. Can you give me a different account number?",
			},
			6: {
				"Please confirm the account number one more time, I want to write it correctly.",
				"So I should send it to that UPI ID? Tell me again slowly please.",
				"Before I do anything, can you send all the details together in one message?",
			},
			7: {
				"Sorry beta, the neighbours came over. Can you send everything once more?",
				"The phone died and I lost the message. Please resend the link and number.",
				"I was at the temple. What was I supposed to do again?",
			},
		},
	}
}

// Pick returns a canned reply for the stage, avoiding any reply the
// honeypot already sent in this session when possible.
func (f *FallbackReplies) Pick(stage int, transcript []models.Message) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	options := f.byStage[stage]
	if len(options) == 0 {
		options = f.byStage[7]
	}

	used := make(map[string]struct{})
	for _, m := range transcript {
		if m.Sender == models.SenderAgent {
			used[strings.TrimSpace(m.Text)] = struct{}{}
		}
	}

	fresh := make([]string, 0, len(options))
	for _, o := range options {
		if _, ok := used[o]; !ok {
			fresh = append(fresh, o)
		}
	}
	if len(fresh) == 0 {
		fresh = options
	}

	return fresh[f.rng.Intn(len(fresh))]
}
