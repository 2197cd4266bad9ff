// Package pathsimp reduces vector paths to fewer cubic Bézier segments while
// bounding the visual deviation that the reduction introduces.
//
// # Pipeline
//
// A [BezPath] is split into subpaths at every [MoveTo]. Each subpath is
// processed independently, and subpaths may be processed in parallel:
//
//  1. [Annotate] computes derived properties of every command: its on-path
//     start and end points, whether its end point lies on the bounding box of
//     the subpath's on-path points, whether it begins at a corner, and whether
//     the curvature direction flips compared to the preceding curves.
//  2. [Chunks] partitions the annotated commands into runs of quadratics or
//     runs of cubics that may be merged. Runs never span a corner, a direction
//     change or an extreme point, and lines, moves and closes always stand on
//     their own.
//  3. [SimplifyChunk] replaces each run with a single cubic if it can find one
//     whose relative area deviation is below the tolerance and whose midpoint
//     stays close to the original. Otherwise the run is kept verbatim.
//
// [Simplify] runs all three steps. Coordinates are never rounded.
//
// # Candidates
//
// Two curves are merged by intersecting the tangent at their shared vertex
// with the tangents at the run's ends and extrapolating the intersections by
// [TangentExtrapolation]. Longer runs are first tested for being a circular
// arc, then the midpoint construction is tried with the middle of the run and
// with the point at half its arc length. As a last resort the outer handles
// are scaled by the length of the run.
//
// # Observing decisions
//
// Decisions can be observed by setting [Options.Observer], for example to a
// [Trace]. Diagnostic logging goes to the logger installed with [SetLogger].
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [Approximate a circle with cubic Bézier curves] by Spencer Mortensen
//   - [Green's theorem]
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Approximate a circle with cubic Bézier curves]: https://spencermortensen.com/articles/bezier-circle/
// [Green's theorem]: https://en.wikipedia.org/wiki/Green%27s_theorem
package pathsimp
