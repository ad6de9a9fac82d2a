package extensions

/*
Default Block Parsers
=====================
SetextHeadingParser     100
ThematicBreakParser     200
ListParser              300
ListItemParser          400
CodeBlockParser         500
ATXHeadingParser        600
FencedCodeBlockParser   700
BlockquoteParser        800
HTMLBlockParser         900
ParagraphParser         1000

Default Inline Parsers
======================
CodeSpanParser   100
LinkParser       200
AutoLinkParser   300
RawHTMLParser    400
EmphasisParser   500

extensions
==========
TaskCheckBoxParser           0
StrikethroughParser          500
LinkifyParser                999

defaultTableASTTransformer   0
TableParagraphTransformer    200

Lower values run first.
*/

const (
	priorityAlertParser            = 150 //Must be before links
	priorityAlertTransformer       = 1000
	priorityAttribListParser       = 2000
	priorityAttribListTransformer  = 1000
	priorityLinkRewriteTransformer = 0
	priorityMediaTransformer       = 9000
	priorityEscapeTransformer      = 10000 // after everything that reads raw segments
)
