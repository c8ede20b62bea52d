package kb

// builtinArticles are the offline answers for the most common
// accessibility questions.
var builtinArticles = []Article{
	{
		Topic:    "color contrast",
		Question: "What color contrast ratio do I need for WCAG AA compliance?",
		Answer: `## WCAG AA Color Contrast Requirements

**For Normal Text:**
- **Minimum ratio: 4.5:1** against background
- Applies to text smaller than 18pt (or 14pt bold)

**For Large Text:**
- **Minimum ratio: 3:1** against background
- Applies to text 18pt+ or 14pt+ bold

**For UI Components & Graphics:**
- **Minimum ratio: 3:1** for form input borders, informative icons,
  charts and graphs, focus indicators

### Testing Tools:
- **WebAIM Contrast Checker**: https://webaim.org/resources/contrastchecker/
- **Colour Contrast Analyser**: free desktop tool
- **Chrome DevTools**: built-in accessibility audit

### Common AA-Compliant Combinations:
- Black text (#000000) on white (#FFFFFF) = 21:1
- Dark gray (#595959) on white = 4.54:1
- Blue (#0066CC) on white = 4.56:1
- White text on dark blue (#003366) = 12.63:1`,
	},
	{
		Topic:    "alt text",
		Question: "How do I write effective alt text for images?",
		Answer: `## Writing Effective Alt Text

**Key Principles:**
1. **Be descriptive but concise** (typically under 125 characters)
2. **Include the image's purpose** in context
3. **Don't start with "Image of" or "Picture of"**
4. **Describe what's important** for understanding

### Examples:

**Decorative images:** use an empty alt attribute (alt="").

**Informative images:**
- Poor: alt="Chart"
- Good: alt="Sales increased 25% from Q1 to Q2 2024"

**Functional images (buttons, links):**
- Poor: alt="Search icon"
- Good: alt="Search"

**Complex images:** provide brief alt text plus a detailed description
nearby; consider aria-describedby for longer descriptions.

### Alt Text Checklist:
- Does it convey the image's meaning?
- Is it contextually relevant?
- Would it make sense read aloud?
- Is it concise but complete?`,
	},
	{
		Topic:    "keyboard navigation",
		Question: "How can I make my website keyboard navigable?",
		Answer: `## Keyboard Navigation Best Practices

**Essential Requirements:**
1. **All interactive elements must be keyboard accessible**
2. **Logical tab order** through content
3. **Visible focus indicators** on all focusable elements
4. **No keyboard traps** (user can always navigate away)

### Key Standards:
- Tab: move to next focusable element
- Shift+Tab: move to previous element
- Enter/Space: activate buttons and links
- Arrow keys: navigate within components (menus, tabs)
- Escape: close dialogs and menus

### Focus Management:
Keep a visible focus indicator (e.g. a 2px outline with offset).
Never remove focus styling entirely.

### Structure:
Use a proper heading hierarchy, skip links for screen readers, and
explicit form labels.

### Testing:
Navigate your site using only the Tab key and confirm all
functionality is reachable with clearly visible focus.`,
	},
	{
		Topic:    "forms",
		Question: "What are the key principles of accessible form design?",
		Answer: `## Accessible Form Design

### 1. Labels and Instructions
Always use explicit labels tied to inputs; group related fields with
fieldset/legend.

### 2. Error Handling
Show clear error messages linked via aria-describedby and announced
with role="alert".

### 3. Required Field Indicators
Mark required fields clearly, use the required attribute and
aria-required="true", and never rely on color alone.

### 4. Input Instructions
Describe format requirements (e.g. password rules) in text referenced
by aria-describedby.

### 5. Accessible Form Controls
Group checkboxes and radio buttons inside a fieldset with a legend.

**Relevant WCAG Guidelines:**
- 3.3.1 Error Identification (A)
- 3.3.2 Labels or Instructions (A)
- 3.3.3 Error Suggestion (AA)
- 3.3.4 Error Prevention (AA)`,
	},
}
