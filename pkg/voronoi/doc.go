// Package voronoi computes planar Voronoi diagrams (with their Delaunay
// dual) confined to a bounding rectangle, using Fortune's sweep line
// algorithm, and smooths site distributions with Lloyd relaxation.
package voronoi
