package keyword

import "regexp"

// entry maps a canonical vocabulary tag to the surface forms that trigger
// it. Vocabularies are ordered slices so extraction order is deterministic
// and matches the vocabulary listing below.
type entry struct {
	tag     string
	aliases []string
}

// Material vocabulary. Aliases cover full-width input, katakana synonyms,
// and English spellings used on the shop floor.
var materialVocab = []entry{
	{"ss400", []string{"ss400", "ｓｓ４００"}},
	{"sus304", []string{"sus304", "ｓｕｓ３０４", "ステンレス304"}},
	{"sus316", []string{"sus316", "ｓｕｓ３１６", "ステンレス316"}},
	{"s45c", []string{"s45c", "ｓ４５ｃ", "炭素鋼45"}},
	{"sph", []string{"sph", "ｓｐｈ"}},
	{"sus", []string{"sus", "ｓｕｓ", "ステンレス", "ステン"}},
	{"ss", []string{"ss", "ｓｓ", "一般鋼"}},
	{"アルミ", []string{"アルミ", "アルミニウム", "al", "aluminum", "ａｌ"}},
	{"ジュラルミン", []string{"ジュラルミン", "ドラル", "dural", "ａ２０１７", "a2017"}},
	{"真鍮", []string{"真鍮", "黄銅", "brass", "ブラス"}},
	{"銅", []string{"銅", "copper", "カッパー"}},
	{"鉄", []string{"鉄", "iron", "アイアン"}},
	{"鋼", []string{"鋼", "steel", "スチール"}},
	{"炭素鋼", []string{"炭素鋼", "carbon steel"}},
}

// Machine-type vocabulary, normalized to the machine names used in
// work-instruction metadata.
var machineVocab = []entry{
	{"マシニング", []string{"マシニング", "machining", "mc", "マシニングセンタ", "マシニングセンター", "ﾏｼﾆﾝｸﾞ"}},
	{"CNC旋盤", []string{"cnc旋盤", "ｃｎｃ旋盤", "nc旋盤", "ｎｃ旋盤"}},
	{"旋盤", []string{"旋盤", "turning", "ターニング", "lathe", "旋削"}},
	{"横中", []string{"横中", "よこなか", "横中ぐり", "horizontal boring", "ﾖｺﾅｶ"}},
	{"ラジアル", []string{"ラジアル", "radial", "ﾗｼﾞｱﾙ", "ボール盤", "drill press"}},
	{"その他", []string{"その他", "other", "手仕上げ", "手加工"}},
	{"研削", []string{"研削", "研磨", "grinding", "グラインダー"}},
}

// Machining-process vocabulary.
var processVocab = []entry{
	{"切削", []string{"切削", "cutting", "カッティング"}},
	{"穴あけ", []string{"穴あけ", "穴開け", "drilling", "drill", "ドリル", "ボーリング", "boring"}},
	{"タップ", []string{"タップ", "tap", "tapping", "ねじ切り", "thread", "ネジ切り", "ネジ"}},
	{"溝加工", []string{"あり溝", "溝", "slot", "slotting", "キー溝", "keyway", "溝入れ"}},
	{"フライス", []string{"フライス", "milling", "正面フライス", "end mill", "エンドミル"}},
	{"旋削", []string{"旋削", "旋盤", "turning", "外径", "内径", "端面"}},
	{"研削", []string{"研削", "研磨", "grinding"}},
	{"仕上げ", []string{"仕上げ", "finish", "finishing", "仕上"}},
	{"面取り", []string{"面取り", "chamfer", "チャンファー"}},
	{"バリ取り", []string{"バリ取り", "deburring", "バリ除去", "デバリング"}},
	{"測定", []string{"測定", "検査", "measurement", "inspection", "計測"}},
}

// Cutting-tool vocabulary. Tools have no aliases; the tag is the surface form.
var toolVocab = []string{
	"フルバック", "ラフィング", "エンドミル", "面取り", "ドリル", "センタードリル",
	"タップ", "リーマ", "ボーリングバー", "フライス", "バイト", "チップ",
}

// Customer-company vocabulary.
var companyVocab = []entry{
	{"中央鉄工所", []string{"中央鉄工所", "中央鉄工", "chuo", "ちゅうおう"}},
	{"サンエイ工業", []string{"サンエイ工業", "サンエイ", "sanei", "さんえい"}},
	{"山本製作所", []string{"山本製作所", "山本", "yamamoto", "やまもと"}},
	{"テクノ", []string{"テクノ", "techno", "てくの"}},
}

// Difficulty vocabulary, normalized to the levels used in metadata.
var difficultyVocab = []entry{
	{"初級", []string{"初級", "簡単", "easy", "初心者"}},
	{"中級", []string{"中級", "普通", "medium", "標準"}},
	{"上級", []string{"上級", "難しい", "hard", "熟練"}},
}

// Part-category vocabulary. Like tools, the tag is the surface form.
var categoryVocab = []string{
	"ブラケット", "フレーム", "シャフト", "ギア", "カバー", "プレート",
	"ハウジング", "ボデー", "リング", "ピストン", "リテーナー",
}

// Phrases that request an unfiltered listing of every record.
var showAllPhrases = []string{
	"全図番", "全ての図番", "すべての図番", "図番を全て", "図番の数",
	"全部", "すべて", "一覧", "リスト", "list all", "show all", "total",
}

// Counting phrases suppress the listing intent: the user wants a number,
// not a full dump.
var countingPhrases = []string{"何件", "何個", "何枚", "いくつ", "カウント"}

// drawingPatterns match the drawing-number shapes in use: hyphenated codes,
// letter-digit hybrids, long numeric runs, and generic long identifiers.
var drawingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[A-Z0-9]{2,}-[A-Z0-9]{2,}`),
	regexp.MustCompile(`(?i)[A-Z]{1,3}[0-9]{4,}`),
	regexp.MustCompile(`(?i)[0-9]{5,}[A-Z0-9\-]*`),
	regexp.MustCompile(`(?i)[A-Z0-9\-_]{8,}`),
}
