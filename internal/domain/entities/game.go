package entities

// Category groups games by the question bank they read from.
type Category string

const (
	CategoryMath          Category = "math"
	CategoryEnglish       Category = "english"
	CategoryComprehension Category = "comprehension"
)

// Layout tells how the columns of a row are interpreted for a game.
type Layout string

const (
	LayoutEquation    Layout = "equation"    // num1 operation num2 = ?
	LayoutSequence    Layout = "sequence"    // num1 holds a space separated sequence with a "?"
	LayoutSentence    Layout = "sentence"    // text1 is the sentence, text2 a label
	LayoutWordClass   Layout = "word-class"  // fixed choices: noun, verb, adjective, adverb
	LayoutPunctuation Layout = "punctuation" // fixed choices: . ? ! ,
	LayoutTense       Layout = "tense"       // text1 verb, text2 target tense
	LayoutSynonym     Layout = "synonym"     // answer plus option2..option4, shuffled
	LayoutAntonym     Layout = "antonym"     // same columns as synonym
	LayoutStory       Layout = "story"       // passage or text2, question in text1
	LayoutChoice      Layout = "choice"      // text1 prompt, option1..option4
)

// GameKind describes one game of the suite and how its rows are read.
type GameKind struct {
	ID       string
	Title    string
	Icon     string
	Category Category
	Layout   Layout
	Storied  bool // sessions are all rows of one story instead of a random sample
}

// IsMath reports whether the game reads from the math question bank.
func (g GameKind) IsMath() bool {
	return g.Category == CategoryMath
}

var gameKinds = []GameKind{
	{ID: "space-math", Title: "Space Math", Icon: "🚀", Category: CategoryMath, Layout: LayoutEquation},
	{ID: "alien-invasion", Title: "Alien Invasion", Icon: "👾", Category: CategoryMath, Layout: LayoutEquation},
	{ID: "bubble-pop", Title: "Bubble Pop", Icon: "🫧", Category: CategoryMath, Layout: LayoutEquation},
	{ID: "planet-hopper", Title: "Planet Hopper", Icon: "🪐", Category: CategoryMath, Layout: LayoutSequence},
	{ID: "fraction-frenzy", Title: "Fraction Frenzy", Icon: "🍕", Category: CategoryMath, Layout: LayoutChoice},
	{ID: "time-warp", Title: "Time Warp", Icon: "⏰", Category: CategoryMath, Layout: LayoutChoice},
	{ID: "money-master", Title: "Money Master", Icon: "💰", Category: CategoryMath, Layout: LayoutChoice},
	{ID: "geometry-galaxy", Title: "Geometry Galaxy", Icon: "📐", Category: CategoryMath, Layout: LayoutChoice},
	{ID: "story-solver", Title: "Story Solver", Icon: "📖", Category: CategoryMath, Layout: LayoutChoice},
	{ID: "estimation-express", Title: "Estimation Express", Icon: "🚂", Category: CategoryMath, Layout: LayoutChoice},
	{ID: "pattern-planet", Title: "Pattern Planet", Icon: "🔷", Category: CategoryMath, Layout: LayoutSequence},
	{ID: "measurement-mission", Title: "Measurement Mission", Icon: "📏", Category: CategoryMath, Layout: LayoutChoice},

	{ID: "grammar-galaxy", Title: "Grammar Galaxy", Icon: "📝", Category: CategoryEnglish, Layout: LayoutSentence},
	{ID: "word-class-warp", Title: "Word Class Warp", Icon: "🏷️", Category: CategoryEnglish, Layout: LayoutWordClass},
	{ID: "punctuation-pop", Title: "Punctuation Pop", Icon: "❗", Category: CategoryEnglish, Layout: LayoutPunctuation},
	{ID: "tense-traveler", Title: "Tense Traveler", Icon: "⏳", Category: CategoryEnglish, Layout: LayoutTense},
	{ID: "synonym-stars", Title: "Synonym Stars", Icon: "⭐", Category: CategoryEnglish, Layout: LayoutSynonym},
	{ID: "antonym-asteroids", Title: "Antonym Asteroids", Icon: "☄️", Category: CategoryEnglish, Layout: LayoutAntonym},
	{ID: "word-wizard", Title: "Word Wizard", Icon: "🧙", Category: CategoryEnglish, Layout: LayoutChoice},
	{ID: "root-raider", Title: "Root Raider", Icon: "🌱", Category: CategoryEnglish, Layout: LayoutChoice},
	{ID: "idiom-island", Title: "Idiom Island", Icon: "🏝️", Category: CategoryEnglish, Layout: LayoutChoice},
	{ID: "homophone-hunt", Title: "Homophone Hunt", Icon: "👂", Category: CategoryEnglish, Layout: LayoutChoice},

	{ID: "story-nebula", Title: "Story Nebula", Icon: "📖", Category: CategoryComprehension, Layout: LayoutStory, Storied: true},
	{ID: "inference-investigator", Title: "Inference Investigator", Icon: "🔍", Category: CategoryComprehension, Layout: LayoutStory, Storied: true},
	{ID: "story-jammer", Title: "Story Jammer", Icon: "📜", Category: CategoryComprehension, Layout: LayoutStory, Storied: true},
	{ID: "spyglass-explorer", Title: "Spyglass Explorer", Icon: "🕵️", Category: CategoryComprehension, Layout: LayoutChoice},
}

var gameKindsByID = func() map[string]GameKind {
	m := make(map[string]GameKind, len(gameKinds))
	for _, g := range gameKinds {
		m[g.ID] = g
	}
	return m
}()

// GameKinds returns every known game in menu order.
func GameKinds() []GameKind {
	out := make([]GameKind, len(gameKinds))
	copy(out, gameKinds)
	return out
}

// LookupGameKind returns the registered game with the given id.
func LookupGameKind(id string) (GameKind, bool) {
	g, ok := gameKindsByID[id]
	return g, ok
}
