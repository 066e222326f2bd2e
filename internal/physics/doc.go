// Package physics computes elastic forces and mechanical energy for a 2D
// mesh of point masses connected by linear springs to their four grid
// neighbors.
//
// Particles move transversally only: neighbors sit in-plane at a fixed
// separation, so a spring stretches solely through the vertical displacement
// difference between its endpoints. Border particles are structurally
// excluded from the force stencil and always receive zero force.
package physics
