// Package phonetics provides the symbolic primitives every other phonalign
// package builds on: feature models, segments, sequences and the factory
// that turns raw transcriptions into them.
//
// 🚀 What is a feature model?
//
//	A phonetic feature model maps each transcription symbol ("a", "pʰ", "#")
//	to a fixed-length numeric vector.  Each vector position is one named
//	articulatory feature (sonorant, continuant, voice, …).  Comparing two
//	segments then reduces to comparing their vectors feature by feature.
//
// ✨ Key pieces:
//   - FeatureModel — the capability consumed by the alignment core:
//     feature count, per-feature difference, name → index lookup
//   - FeatureTable — a concrete in-memory model, loadable from YAML
//   - Segment — one symbol plus its immutable feature vector
//   - Sequence — an ordered list of segments sharing one model
//   - SequenceFactory — tokenizes transcription strings into Sequences
//
// ⚙️ Usage:
//
//	table, err := phonetics.ParseFeatureTable(modelYAML)
//	if err != nil { ... }
//
//	factory := phonetics.NewSequenceFactory(table)
//	seq, err := factory.ToSequence("#amapar")
//
// Undefined feature values are represented as NaN and contribute zero to any
// difference, so partially specified symbols (anchors, boundaries) compare
// cheaply against everything.
package phonetics
