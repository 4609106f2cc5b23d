// Package analysis holds the stateless message classifiers: language and
// tone, emotion, self-introduced names, and the per-conversation emotional
// context built from them.
package analysis

import (
	"regexp"
	"strings"

	"mindcare/support-chat/types"
)

type emotionRule struct {
	emotion  types.Emotion
	patterns []*regexp.Regexp
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

// Checked before anything else.
var suicidalPatterns = compilePatterns([]string{
	`\b(kill|hurt|harm)\s+(my\s*self|myself)\b`,
	`\b(end|ending|take|taking)\s+(it\s+all|my\s+(own\s+)?life)\b`,
	`\bwant\s+to\s+die\b`,
	`\bwanna\s+die\b`,
	`\bbetter\s+off\s+dead\b`,
	`\b(suicide|suicidal)\b`,
	`\bno\s+reason\s+to\s+live\b`,
	`\bdon'?t\s+want\s+to\s+(live|be\s+alive|exist)\b`,
	`\b(cut|cutting)\s+my\s*self\b`,
	`\bnot\s+worth\s+living\b`,
	`\bwish\s+i\s+(was|were)\s+(dead|never\s+born|gone)\b`,
	`\bwish\s+i\s+(wasn'?t|weren'?t)\s+(alive|here|around|born)\b`,
	`\bwish\s+i\s+could\s+(die|disappear|vanish)\b`,
	`\b(want|wanna)\s+(to\s+)?disappear\b`,
	`\bdisappear\s+forever\b`,
	`\b(hope|wish)\s+i\s+(never|don'?t|didn'?t|won'?t)\s+wake\s+up\b`,
	`\bdon'?t\s+want\s+to\s+wake\s+up\b`,
	`\bkms\b`,
	`\bmar\s+(jana|jaun|jaaun|jaunga|jaungi)\b`,
	`\bmarna\s+(hai|chahta|chahti)\b`,
	`\bkhud\s*kushi\b`,
	`\bjeene\s+ka\s+(mann|man)\s+nahi\b`,
	`\bzindagi\s+khatam\b`,
	`\bsab\s+khatam\s+kar\s+(du|dun|doon|dena)\b`,
})

// Whole-message greetings only, so "hi, I feel awful" falls through to sadness.
var greetingPatterns = compilePatterns([]string{
	`^\s*(hi+|hello+|hey+|hiya|yo|heya|howdy)(\s+(there|bro|yaar|buddy|friend|dost))?\s*[!.?]*\s*$`,
	`^\s*(namaste|namaskar|salaam|kaise\s+ho|kya\s+haal\s+hai|kya\s+chal\s+raha\s+hai)\s*[!.?]*\s*$`,
	`^\s*good\s+(morning|afternoon|evening|night)\s*[!.?]*\s*$`,
	`^\s*(what'?s\s+up|wassup|sup|how\s+are\s+you(\s+doing)?)\s*[!.?]*\s*$`,
})

var emotionRules = []emotionRule{
	{types.EmotionSadness, compilePatterns([]string{
		`\b(sad|unhappy|depressed|depressing|miserable|crying|cried|tears|heartbroken|down\s+in\s+the\s+dumps)\b`,
		`\bfeel(ing)?\s+(so\s+|really\s+|very\s+)?(low|down|blue|empty|awful|terrible)\b`,
		`\b(udaas|udas|dukhi|rona\s+aa\s+raha|ro\s+raha|ro\s+rahi|mann\s+nahi\s+lag)\b`,
	})},
	{types.EmotionAnxiety, compilePatterns([]string{
		`\b(anxious|anxiety|nervous|panic|panicking|worried|worry|worrying|overthinking|restless|tense|stressed|stress)\b`,
		`\b(can'?t|cannot)\s+(breathe|calm\s+down|stop\s+thinking)\b`,
		`\b(ghabrahat|tension|chinta|dar\s+lag|darr\s+lag|bechaini|ghabra)\b`,
	})},
	{types.EmotionAnger, compilePatterns([]string{
		`\b(angry|anger|furious|mad\s+at|pissed|rage|irritated|annoyed|frustrated|hate\s+(him|her|them|this|everyone))\b`,
		`\b(gussa|gusse|chidh|pagal\s+kar\s+diya|dimag\s+kharab|irritate)\b`,
	})},
	{types.EmotionLoneliness, compilePatterns([]string{
		`\b(lonely|loneliness|alone|isolated|no\s+friends|nobody\s+(cares|understands)|no\s+one\s+(cares|understands|to\s+talk))\b`,
		`\b(akela|akeli|akelapan|koi\s+nahi\s+hai|koi\s+baat\s+nahi\s+karta|tanha)\b`,
	})},
	{types.EmotionHopelessness, compilePatterns([]string{
		`\b(hopeless|pointless|worthless|meaningless|give\s+up|giving\s+up|no\s+hope|nothing\s+matters|what'?s\s+the\s+point|never\s+get\s+better)\b`,
		`\b(bekaar|bekar|koi\s+fayda\s+nahi|umeed\s+nahi|kuch\s+nahi\s+ho\s+sakta|sab\s+khatam|haar\s+gaya|haar\s+gayi)\b`,
	})},
	{types.EmotionFinancialStress, compilePatterns([]string{
		`\b(money|debt|loan|rent|bills?|(i\s+am|i'm|im|we're|so|totally|completely)\s+broke|salary|emi|financial|finances|lost\s+my\s+job|jobless|unemployed|laid\s+off)\b`,
		`\b(paise|paisa|paison|karza|karz|naukri\s+(chali|gayi|nahi)|kharcha)\b`,
	})},
	{types.EmotionHeartbreak, compilePatterns([]string{
		`\b(break\s*up|broke\s+up|breakup|dumped|cheated|ex\b|girlfriend\s+left|boyfriend\s+left|she\s+left\s+me|he\s+left\s+me|divorce)\b`,
		`\b(dil\s+toot|dil\s+tut|dhoka|chhod\s+diya|chod\s+diya|bewafa)\b`,
	})},
	{types.EmotionUserTrust, compilePatterns([]string{
		`\b(can\s+i\s+trust\s+you|are\s+you\s+(real|human|a\s+bot|a\s+robot)|do\s+you\s+(care|judge)|will\s+you\s+tell\s+anyone|is\s+this\s+private|keep\s+(it|this)\s+secret)\b`,
		`\b(bharosa|bharosa\s+kar|bhrosa|kisi\s+ko\s+batoge|judge\s+karoge)\b`,
	})},
	{types.EmotionHappyMoments, compilePatterns([]string{
		`\b(happy|glad|grateful|thankful|excited|good\s+news|feeling\s+(good|better)|smiling|proud)\b`,
		`\b(khush|khushi|maza\s+aa|accha\s+lag\s+raha|achha\s+lag\s+raha)\b`,
	})},
	{types.EmotionAwesome, compilePatterns([]string{
		`\b(awesome|amazing|fantastic|wonderful|great\s+day|best\s+day|nailed\s+it|crushed\s+it|got\s+the\s+job|got\s+promoted|passed\s+(my|the)\s+(exam|test|interview))\b`,
		`\b(zabardast|kamaal|mast|jhakaas|bahut\s+badiya|bahut\s+badhiya)\b`,
	})},
	{types.EmotionDeepThoughts, compilePatterns([]string{
		`\b(meaning\s+of\s+life|purpose|why\s+do\s+we|what\s+is\s+life|universe|existence|exist|philosophy|soul|destiny|karma)\b`,
		`\b(zindagi\s+ka\s+matlab|jeevan\s+ka\s+arth|kyun\s+jeete|maqsad)\b`,
	})},
}

// ClassifyEmotion returns the first emotion whose patterns match msg.
// Suicidal phrasing wins over every other category.
func ClassifyEmotion(msg string) types.Emotion {
	text := strings.TrimSpace(msg)
	if text == "" {
		return types.EmotionDefault
	}

	if matchesAny(suicidalPatterns, text) {
		return types.EmotionSuicidal
	}
	if matchesAny(greetingPatterns, text) {
		return types.EmotionGreeting
	}
	for _, rule := range emotionRules {
		if matchesAny(rule.patterns, text) {
			return rule.emotion
		}
	}
	return types.EmotionDefault
}

// IsEmotionWord reports whether word is one of the feeling words the
// classifier keys on. Used to stop "I'm sad" being read as a name.
func IsEmotionWord(word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return false
	}
	if _, ok := feelingWords[w]; ok {
		return true
	}
	return ClassifyEmotion("feeling "+w) != types.EmotionDefault
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

var feelingWords = map[string]struct{}{
	"sad": {}, "happy": {}, "fine": {}, "okay": {}, "ok": {}, "good": {}, "bad": {},
	"tired": {}, "lonely": {}, "alone": {}, "anxious": {}, "depressed": {}, "angry": {},
	"stressed": {}, "scared": {}, "worried": {}, "upset": {}, "hurt": {}, "lost": {},
	"broken": {}, "confused": {}, "done": {}, "exhausted": {}, "nervous": {}, "afraid": {},
	"bored": {}, "sick": {}, "great": {}, "awesome": {}, "better": {}, "worse": {}, "well": {},
	"numb": {}, "empty": {}, "hopeless": {}, "worthless": {}, "frustrated": {},
	"udaas": {}, "udas": {}, "khush": {}, "theek": {}, "thik": {}, "pareshan": {},
	"akela": {}, "akeli": {}, "dukhi": {}, "gussa": {},
	"overwhelmed": {}, "ashamed": {}, "jealous": {}, "guilty": {}, "insecure": {},
	"embarrassed": {}, "disappointed": {}, "heartbroken": {}, "drained": {}, "miserable": {},
	"terrified": {}, "helpless": {}, "useless": {}, "stupid": {}, "ugly": {}, "lazy": {},
	"weak": {}, "pathetic": {}, "unhappy": {}, "unwell": {}, "down": {}, "low": {},
	"annoyed": {}, "irritated": {}, "furious": {}, "restless": {}, "paranoid": {},
	"desperate": {}, "trapped": {}, "ignored": {}, "rejected": {}, "unloved": {},
	"unwanted": {}, "abandoned": {}, "betrayed": {}, "devastated": {}, "shattered": {},
	"homesick": {}, "hopeful": {}, "relieved": {}, "grateful": {}, "thankful": {},
	"proud": {}, "excited": {}, "calm": {}, "content": {}, "blessed": {}, "worn": {},
	"burnt": {}, "burned": {}, "moody": {}, "emotional": {}, "sensitive": {}, "shy": {},
	"awkward": {}, "uncomfortable": {}, "sleepless": {}, "restive": {}, "panicked": {},
	"pareshaan": {}, "bimar": {}, "beemar": {}, "bimaar": {}, "thaka": {}, "thaki": {},
	"thakaa": {}, "naraz": {}, "naraaz": {}, "bechain": {}, "tanha": {}, "majboor": {},
	"mayoos": {}, "nirash": {}, "tension": {}, "ghabraya": {}, "ghabrayi": {},
}
