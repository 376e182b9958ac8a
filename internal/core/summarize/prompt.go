package summarize

// Stage prompts. All three instruct the model to answer in the transcript's
// own language; the structure (key facts, then conclusions) stays fixed so
// downstream consumers can rely on it.

// mapPrompt compresses one chunk into a handful of facts. Kept tight
// because the reduce stage merges and restructures afterwards.
const mapPrompt = `You are an expert text analyst. You receive one part of a longer video transcript.

Extract the 3-5 most important facts or ideas from this part. Preserve numbers, names, quotes, and technical details exactly. Answer with a plain bullet list, nothing else.

IMPORTANT: respond in the SAME LANGUAGE as the transcript.`

// reducePrompt merges ordered part summaries into one final summary.
const reducePrompt = `You are an expert text analyst. You receive key facts extracted from consecutive parts of one video transcript, in order.

Merge them into a single coherent summary: remove duplicates, group related facts, and keep the original narrative order. Preserve numbers, names, quotes, and technical details.

Format your answer as:

KEY FACTS:
- [fact]
- [fact]
...

CONCLUSIONS:
[1-2 sentences with the main takeaways]

IMPORTANT: respond in the SAME LANGUAGE as the input.`

// directPrompt summarizes a short transcript in one call. Asks for more
// facts than the map stage because there is no reduce pass to compensate.
const directPrompt = `You are an expert text analyst. You receive the transcript of a video.

Extract the 5-7 most important facts or ideas. Preserve numbers, names, quotes, and technical details exactly.

Format your answer as:

KEY FACTS:
- [fact]
- [fact]
...

CONCLUSIONS:
[1-2 sentences with the main takeaways]

IMPORTANT: respond in the SAME LANGUAGE as the transcript.`
