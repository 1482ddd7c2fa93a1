package flows

import "github.com/yigit/studyportal/internal/pkg/prompt"

const systemPrompt = "You are the content assistant of a coaching institute's study portal. " +
	"You write for school and junior college students preparing for board and entrance exams."

var admissionDescriptionPrompt = prompt.MustParse("admission-description", `Write the description for an admission batch.

Batch title: {{title}}
Teacher: {{teacherName}}
Subject: {{subject}}
Class: {{className}}
Academic year: {{year}}

The description is read by students and parents deciding whether to enrol. Mention the teacher, the subject and the academic year, keep a warm and professional tone, and write at least 100 characters. Return it in the "description" field.`)

var contentPrompt = prompt.MustParse("content", `Write clear, well-structured study content for the topic "{{title}}".
Use short paragraphs and markdown headings. Return it in the "content" field.`)

var omrSheetPrompt = prompt.MustParse("omr-sheet", `Create a printable OMR answer sheet as one self-contained HTML document with inline CSS.

Title: {{title}}
{{#if subtitle}}Subtitle: {{subtitle}}
{{/if}}Questions: {{questionCount}}
Options per question: {{optionsPerQuestion}} ({{optionStyle}} labels)

Add a header with the title{{#if subtitle}} and subtitle{{/if}}, boxes for the candidate's name, roll number and signature, and a short instruction to fill bubbles with a dark pen.
Embed the following answer grid exactly as given, styling the .bubble elements as circles:

{{{tableHtml}}}

Return the document in the "html" field.`)

var mcqTestPrompt = prompt.MustParse("mcq-test", `Prepare a multiple choice test of exactly 20 questions from the study material below.

Title: {{title}}
{{#if class}}Class: {{class}}
{{/if}}{{#if subjects}}Subjects: {{#each subjects sep=", "}}{{this}}{{/each}}
{{/if}}{{#if streams}}Streams: {{#each streams sep=", "}}{{this}}{{/each}}
{{/if}}
Material:
{{resourceContent}}

Layout rules:
- The first line must be exactly: MCQ TEST: {{title}}
- The second line must be exactly: Total Questions: 20 | Total Marks: 20 | Time: 30 Minutes
- Number questions 1 to 20, each with four options labelled (a) to (d).
- End with an "Answer Key" section listing the correct option for every question.
Return the whole test as plain text in the "test" field.`)

var sectionedTestPrompt = prompt.MustParse("sectioned-test", `Prepare a written test from the study material below.

Title: {{title}}
{{#if class}}Class: {{class}}
{{/if}}{{#if subjects}}Subjects: {{#each subjects sep=", "}}{{this}}{{/each}}
{{/if}}{{#if streams}}Streams: {{#each streams sep=", "}}{{this}}{{/each}}
{{/if}}
Material:
{{resourceContent}}

Layout rules:
- The first line must be exactly: TEST: {{title}}
- The second line must be exactly: Total Marks: 50 | Time: 2 Hours
- Then exactly four sections, in this order:
  Section A: 10 multiple choice questions, 1 mark each (10 marks)
  Section B: 5 very short answer questions, 2 marks each (10 marks)
  Section C: 5 short answer questions, 3 marks each (15 marks)
  Section D: 3 long answer questions, 5 marks each (15 marks)
- Number questions continuously across sections.
Return the whole test as plain text in the "test" field.`)

var regularPaperPrompt = prompt.MustParse("regular-paper", `Write {{questionCount}} descriptive questions with model answers for "{{title}}" ({{subject}}{{#if class}}, class {{class}}{{/if}}).
Use only the material below.

{{resourceContent}}

Return them in the "questions" array, each with "question" and "answer".`)

var mcqPaperPrompt = prompt.MustParse("mcq-paper", `Write {{questionCount}} multiple choice questions for "{{title}}" ({{subject}}{{#if class}}, class {{class}}{{/if}}).
Use only the material below.

{{resourceContent}}

Return them in the "questions" array, each with "question", four "options" and the "correctAnswer" copied verbatim from the options.`)

var paymentPrompt = prompt.MustParse("payment-details", `The attached image is a screenshot of a payment made for an admission fee.
Read the sender's name, the amount, the date, the time and the transaction or reference id.
Leave out any field you cannot read with confidence. Do not guess.`)

var resourceAnswerPrompt = prompt.MustParse("resource-answer", `Answer the student's question using only the study material below.
If the material does not contain the answer, say that it is not covered by this resource instead of answering from general knowledge.

Material: {{resourceTitle}}
---
{{resourceContent}}
---
{{#if photoDataUri}}The student attached an image; use it to understand the question.
{{/if}}Question: {{question}}

Answer in markdown in the "answer" field.`)

var textAnswerPrompt = prompt.MustParse("text-answer", `Answer the student's question accurately and step by step where it helps.
{{#if photoDataUri}}The student attached an image; use it to understand the question.
{{/if}}Question: {{question}}

Answer in markdown in the "answer" field.`)

var suggestionsPrompt = prompt.MustParse("follow-up-suggestions", `A student asked: {{question}}

They were told:
{{answer}}

Suggest up to 3 short follow-up questions the student could ask next. Return them in the "suggestions" array.`)

var imagePrompt = prompt.MustParse("image", `An educational illustration for students: {{question}}. Clean, labelled, textbook style, white background.`)
