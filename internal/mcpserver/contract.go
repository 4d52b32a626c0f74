package mcpserver

// EntryFormatContract describes the canonical entry format that LLM
// consumers should follow when recording papers.
const EntryFormatContract = `# Litkeep Entry Format Contract

Every paper recorded in Litkeep MUST follow this structure.

## Fields

- **topic** (required): one of the topic ids returned by the ` + "`" + `list_topics` + "`" + ` tool.
  Topics are a fixed enumeration; entries cannot be recorded outside it.
- **title** (required): the paper title, non-blank.
- **authors** (required): author names joined with semicolons, e.g.
  ` + "`" + `Smith, J.; Doe, A.` + "`" + `. At least one non-blank name is required.
  The string is stored as given; it is only split at search and export time.
- **year** (required): the publication year as an integer.
- **journal** (required): the journal or venue name, non-blank.
- **abstract** (required): free-form abstract text, non-blank. Use ` + "`" + `\n` + "`" + `
  between paragraphs; each paragraph renders as its own block in the
  document.

## Rules

1. **Topics are closed.** Unknown topic ids are rejected; never invent one.
2. **Entries are append-only.** A new entry goes to the end of its topic;
   positions of existing entries never change.
3. **Only the abstract is editable** after recording, via the REST API.
4. **Regeneration is automatic.** Every successful mutation rewrites the
   review document and the BibTeX bibliography; do not edit those files.

## Example

` + "```" + `json
{
  "topic": "1",
  "title": "Growth in Transition Economies",
  "authors": "Smith, J.; Doe, A.",
  "year": 2019,
  "journal": "Journal of Comparative Economics",
  "abstract": "We study growth patterns.\nPanel data from 1991 to 2015."
}
` + "```" + `
`
