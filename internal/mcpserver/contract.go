package mcpserver

// ExportFormatContract describes the canonical Markdown layout that the
// export tools produce, for LLM consumers that parse or re-emit it.
const ExportFormatContract = `# Chrononotes Export Format Contract

The export_notes tool returns a single Markdown document in this layout.

## Structure

Notes appear in chronological order (undated notes last). Each note is a
block:

` + "```" + `markdown
# Note title
Date: <date summary>
Tags: tag-one, tag-two

Body converted to Markdown.
` + "```" + `

Blocks are joined by a horizontal rule surrounded by blank lines:

` + "```" + `

---

` + "```" + `

## Rules

1. **Title line.** ` + "`" + `# ` + "`" + ` followed by the note title. Untitled notes
   render as ` + "`" + `# Untitled note` + "`" + `.
2. **Date line.** The date summary depends on the note's date kind:
   - exact date: ` + "`" + `Date: Exact: 2024-02-10` + "`" + `
   - approximate range: ` + "`" + `Date: Around: 2023-08-15 (±3 days)` + "`" + `
   - broad period: ` + "`" + `Date: Period: 2022-09-01 – 2022-12-31` + "`" + `
   - no date: ` + "`" + `Date: No date` + "`" + `
3. **Tags line.** Comma-separated tags, or ` + "`" + `Tags: No tags` + "`" + ` when the
   note has none.
4. **Body.** The rich-text body rendered as Markdown: paragraphs separated
   by blank lines, ` + "`" + `- ` + "`" + ` bullets for unordered lists, ` + "`" + `1. ` + "`" + `
   numbering for ordered lists, ` + "`" + `**bold**` + "`" + ` and ` + "`" + `_italic_` + "`" + `
   inline marks.
5. **Dates** are ISO YYYY-MM-DD strings throughout.

## Example

` + "```" + `markdown
# Trip to X
Date: Around: 2023-08-15 (±3 days)
Tags: travel

Rough dates, photos in the shared album.

---

# Workshop recap
Date: Period: 2022-09-01 – 2022-12-31
Tags: work, learning

Ran across the autumn term.
` + "```" + `
`
