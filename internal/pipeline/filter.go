package pipeline

import (
	"math"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"convoset/internal/model"
)

const (
	codeFenceMarker = "```"
	newActionMarker = "!newAction("
)

// isCoding classifies a conversation as code-bearing: any turn contains a
// fenced-code marker, or the final turn is from the assistant and contains
// an action invocation.
func isCoding(conv model.Conversation) bool {
	for _, turn := range conv {
		if strings.Contains(turn.Value, codeFenceMarker) {
			return true
		}
	}
	last := conv[len(conv)-1]
	return last.From == model.SpeakerAssistant && strings.Contains(last.Value, newActionMarker)
}

// FilterByCategory rebalances the corpus to targetRatio non-coding examples
// per coding example: all coding conversations are kept, round(ratio×coding)
// non-coding ones are sampled uniformly without replacement, and the result
// order is randomized. With zero coding examples the ratio cannot be
// satisfied: the corpus passes through unchanged when it is empty, otherwise
// an empty corpus is returned with a warning.
func FilterByCategory(corpus model.Corpus, targetRatio float64, rng *rand.Rand, logger zerolog.Logger) model.Corpus {
	var coding, nonCoding model.Corpus
	for _, conv := range corpus {
		if len(conv) == 0 {
			continue
		}
		if isCoding(conv) {
			coding = append(coding, conv)
		} else {
			nonCoding = append(nonCoding, conv)
		}
	}

	logger.Info().Int("coding", len(coding)).Int("non_coding", len(nonCoding)).
		Msg("classified conversations by category")

	if len(coding) == 0 {
		if len(nonCoding) == 0 {
			logger.Warn().Msg("no conversations to rebalance")
			return corpus
		}
		logger.Warn().Msg("no coding examples found, category filter yields an empty dataset")
		return model.Corpus{}
	}

	keep := int(math.Round(targetRatio * float64(len(coding))))
	if keep > len(nonCoding) {
		keep = len(nonCoding)
	}

	result := make(model.Corpus, 0, len(coding)+keep)
	result = append(result, coding...)
	for _, i := range rng.Perm(len(nonCoding))[:keep] {
		result = append(result, nonCoding[i])
	}
	rng.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})

	logger.Info().Int("kept_non_coding", keep).Int("final", len(result)).
		Msg("rebalanced corpus by category")
	return result
}
